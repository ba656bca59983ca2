package index

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/codeatlas/pkg/types"
)

// section names recognized at the top level of an artifact
const (
	sectionEntries    = "entries"
	sectionPartitions = "partitions"
	sectionDomains    = "domains"
	sectionSummary    = "summary"
)

// Parse reconstructs an artifact from previously written text. Entries
// missing an id, title, domain, or source fail with an explicit error, and
// text carrying neither an entries section nor a partition manifest is
// rejected as unrecognized.
func Parse(text string) (*types.Artifact, error) {
	p := &parser{}
	if err := p.parse(text); err != nil {
		return nil, err
	}

	if !p.sawEntries && !p.sawPartitions {
		return nil, types.ErrUnrecognizedFormat
	}

	if p.sawPartitions && !p.sawEntries {
		art := types.ManifestArtifact(p.run, p.partitions)
		art.Domains = p.domains
		art.Summary = p.summary
		return art, nil
	}

	art := types.InlineArtifact(p.run, p.entries)
	art.Domains = p.domains
	art.Summary = p.summary
	art.Partitions = p.partitions
	return art, nil
}

type parser struct {
	run        types.RunMetadata
	entries    []types.IndexEntry
	partitions []types.PartitionRef
	domains    []types.DomainRollup
	summary    []types.SummaryEntry

	sawEntries    bool
	sawPartitions bool

	section string

	// in-progress items
	entry     *types.IndexEntry
	partition *types.PartitionRef
	rollup    *types.DomainRollup
	sumEntry  *types.SummaryEntry
}

func (p *parser) parse(text string) error {
	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		if err := p.parseLine(line, lineNo); err != nil {
			return err
		}
	}
	return p.flush()
}

func (p *parser) parseLine(line string, lineNo int) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	// Top-level section headers and scalars start in column zero.
	if !strings.HasPrefix(line, " ") {
		return p.parseTopLevel(trimmed, lineNo)
	}

	itemStart := strings.HasPrefix(trimmed, "- ")
	if itemStart {
		trimmed = strings.TrimPrefix(trimmed, "- ")
	}

	key, value, err := splitKeyValue(trimmed, lineNo)
	if err != nil {
		return err
	}

	switch p.section {
	case sectionEntries:
		return p.parseEntryField(key, value, itemStart, lineNo)
	case sectionPartitions:
		return p.parsePartitionField(key, value, itemStart, lineNo)
	case sectionDomains:
		return p.parseDomainField(key, value, itemStart, lineNo)
	case sectionSummary:
		return p.parseSummaryField(key, value, itemStart, lineNo)
	default:
		return fmt.Errorf("line %d: content outside a recognized section", lineNo)
	}
}

func (p *parser) parseTopLevel(trimmed string, lineNo int) error {
	key, value, err := splitKeyValue(trimmed, lineNo)
	if err != nil {
		return err
	}

	if value == "" {
		switch key {
		case sectionEntries:
			p.sawEntries = true
		case sectionPartitions:
			p.sawPartitions = true
		case sectionDomains, sectionSummary:
		default:
			return fmt.Errorf("line %d: unknown section %q", lineNo, key)
		}
		if err := p.flush(); err != nil {
			return err
		}
		p.section = key
		return nil
	}

	switch key {
	case "version":
		// Schema version; currently informational.
		_, err = unquote(value, lineNo)
		return err
	case "project":
		p.run.Project, err = unquote(value, lineNo)
		return err
	case "run_id":
		p.run.RunID, err = unquote(value, lineNo)
		return err
	case "generated_at":
		p.run.GeneratedAt, err = unquote(value, lineNo)
		return err
	case "entry_count":
		p.run.EntryCount, err = strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid entry_count: %w", lineNo, err)
		}
		return nil
	case "partition":
		// Partition artifacts name themselves; the loader keys on the manifest.
		_, err = unquote(value, lineNo)
		return err
	default:
		return fmt.Errorf("line %d: unknown key %q", lineNo, key)
	}
}

func (p *parser) parseEntryField(key, value string, itemStart bool, lineNo int) error {
	if itemStart {
		if err := p.flushEntry(); err != nil {
			return err
		}
		p.entry = &types.IndexEntry{}
	}
	if p.entry == nil {
		return fmt.Errorf("line %d: entry field outside an entry item", lineNo)
	}

	var err error
	e := p.entry
	switch key {
	case "id":
		e.ID, err = unquote(value, lineNo)
	case "title":
		e.Title, err = unquote(value, lineNo)
	case "domain":
		e.Domain, err = unquote(value, lineNo)
	case "source":
		e.Source, err = unquote(value, lineNo)
	case "mini_summary":
		e.MiniSummary, err = unquote(value, lineNo)
	case "tags":
		e.Tags, err = parseArray(value, lineNo)
	case "timestamp":
		e.Timestamp, err = unquote(value, lineNo)
	case "freshness_score":
		e.FreshnessScore, err = parseFloat(value, lineNo)
	case "importance_score":
		e.ImportanceScore, err = parseFloat(value, lineNo)
	case "status":
		e.Status, err = unquote(value, lineNo)
	case "version":
		e.Version, err = unquote(value, lineNo)
	case "provenance":
		e.Provenance.SourceHash, err = parseProvenance(value, lineNo)
	default:
		return fmt.Errorf("line %d: unknown entry key %q", lineNo, key)
	}
	return err
}

func (p *parser) parsePartitionField(key, value string, itemStart bool, lineNo int) error {
	if itemStart {
		p.flushPartition()
		p.partition = &types.PartitionRef{}
	}
	if p.partition == nil {
		return fmt.Errorf("line %d: partition field outside a partition item", lineNo)
	}

	var err error
	switch key {
	case "name":
		p.partition.Name, err = unquote(value, lineNo)
	case "artifact":
		p.partition.Artifact, err = unquote(value, lineNo)
	case "count":
		p.partition.Count, err = strconv.Atoi(value)
		if err != nil {
			err = fmt.Errorf("line %d: invalid partition count: %w", lineNo, err)
		}
	default:
		return fmt.Errorf("line %d: unknown partition key %q", lineNo, key)
	}
	return err
}

func (p *parser) parseDomainField(key, value string, itemStart bool, lineNo int) error {
	if itemStart {
		p.flushRollup()
		p.rollup = &types.DomainRollup{}
	}
	if p.rollup == nil {
		return fmt.Errorf("line %d: domain field outside a domain item", lineNo)
	}

	var err error
	switch key {
	case "domain":
		p.rollup.Domain, err = unquote(value, lineNo)
	case "count":
		p.rollup.Count, err = strconv.Atoi(value)
		if err != nil {
			err = fmt.Errorf("line %d: invalid domain count: %w", lineNo, err)
		}
	case "mean_importance":
		p.rollup.MeanImportance, err = parseFloat(value, lineNo)
	default:
		return fmt.Errorf("line %d: unknown domain key %q", lineNo, key)
	}
	return err
}

func (p *parser) parseSummaryField(key, value string, itemStart bool, lineNo int) error {
	if itemStart {
		p.flushSummary()
		p.sumEntry = &types.SummaryEntry{}
	}
	if p.sumEntry == nil {
		return fmt.Errorf("line %d: summary field outside a summary item", lineNo)
	}

	var err error
	s := p.sumEntry
	switch key {
	case "id":
		s.ID, err = unquote(value, lineNo)
	case "title":
		s.Title, err = unquote(value, lineNo)
	case "domain":
		s.Domain, err = unquote(value, lineNo)
	case "score":
		s.Score, err = parseFloat(value, lineNo)
	case "file":
		s.File, err = unquote(value, lineNo)
	case "tags":
		s.Tags, err = parseArray(value, lineNo)
	case "partition":
		s.Partition, err = unquote(value, lineNo)
	default:
		return fmt.Errorf("line %d: unknown summary key %q", lineNo, key)
	}
	return err
}

// flush closes any in-progress items when a section ends.
func (p *parser) flush() error {
	if err := p.flushEntry(); err != nil {
		return err
	}
	p.flushPartition()
	p.flushRollup()
	p.flushSummary()
	return nil
}

func (p *parser) flushEntry() error {
	if p.entry == nil {
		return nil
	}
	e := *p.entry
	p.entry = nil

	for _, req := range []struct{ name, value string }{
		{"id", e.ID},
		{"title", e.Title},
		{"domain", e.Domain},
		{"source", e.Source},
	} {
		if req.value == "" {
			return fmt.Errorf("%w: %s (entry %q)", types.ErrMissingField, req.name, e.ID)
		}
	}

	p.entries = append(p.entries, e)
	return nil
}

func (p *parser) flushPartition() {
	if p.partition != nil {
		p.partitions = append(p.partitions, *p.partition)
		p.partition = nil
	}
}

func (p *parser) flushRollup() {
	if p.rollup != nil {
		p.domains = append(p.domains, *p.rollup)
		p.rollup = nil
	}
}

func (p *parser) flushSummary() {
	if p.sumEntry != nil {
		p.summary = append(p.summary, *p.sumEntry)
		p.sumEntry = nil
	}
}

// splitKeyValue splits "key: value" at the first colon.
func splitKeyValue(s string, lineNo int) (string, string, error) {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return "", "", fmt.Errorf("line %d: expected key: value", lineNo)
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), nil
}

// unquote parses a quoted scalar with JSON-style escapes.
func unquote(s string, lineNo int) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("line %d: expected quoted string, got %q", lineNo, s)
	}
	body := s[1 : len(s)-1]

	var b strings.Builder
	escaped := false
	for _, r := range body {
		if escaped {
			switch r {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"', '\\':
				b.WriteRune(r)
			default:
				return "", fmt.Errorf("line %d: unknown escape \\%c", lineNo, r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if r == '"' {
			return "", fmt.Errorf("line %d: unescaped quote inside string", lineNo)
		}
		b.WriteRune(r)
	}
	if escaped {
		return "", fmt.Errorf("line %d: dangling escape at end of string", lineNo)
	}
	return b.String(), nil
}

// parseArray parses a bracketed, comma-delimited array of quoted strings.
// Splitting is quote-aware and escape-aware.
func parseArray(s string, lineNo int) ([]string, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("line %d: expected bracketed array, got %q", lineNo, s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, nil
	}

	var values []string
	var cur strings.Builder
	inQuote := false
	escaped := false

	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune('\\')
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && inQuote:
			escaped = true
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ',' && !inQuote:
			v, err := unquote(strings.TrimSpace(cur.String()), lineNo)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("line %d: unterminated string in array", lineNo)
	}

	v, err := unquote(strings.TrimSpace(cur.String()), lineNo)
	if err != nil {
		return nil, err
	}
	return append(values, v), nil
}

// parseProvenance parses the inline brace-delimited provenance object:
// {source_hash: "sha256:..."}.
func parseProvenance(s string, lineNo int) (string, error) {
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return "", fmt.Errorf("line %d: expected inline provenance object, got %q", lineNo, s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])

	key, value, err := splitKeyValue(body, lineNo)
	if err != nil {
		return "", err
	}
	if key != "source_hash" {
		return "", fmt.Errorf("line %d: unknown provenance key %q", lineNo, key)
	}
	return unquote(value, lineNo)
}

func parseFloat(s string, lineNo int) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid number %q", lineNo, s)
	}
	return v, nil
}
