package bench

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is a report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML:
		return f, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "parse %q", s)
}

const averageRow = "AVERAGE"

// Row is the timing of one phase on one dataset.
type Row struct {
	Dataset string
	Treap   time.Duration
	AVL     time.Duration
}

// Ratio returns treap time over AVL time, +Inf when the AVL time is zero.
func (r Row) Ratio() float64 {
	if r.AVL <= 0 {
		return math.Inf(1)
	}
	return float64(r.Treap) / float64(r.AVL)
}

// PhaseResult holds the rows of one phase, one per dataset.
type PhaseResult struct {
	Phase Phase
	Rows  []Row
}

// Average returns the mean treap and AVL times over all rows.
func (p PhaseResult) Average() Row {
	avg := Row{Dataset: averageRow}
	if len(p.Rows) == 0 {
		return avg
	}
	for _, r := range p.Rows {
		avg.Treap += r.Treap
		avg.AVL += r.AVL
	}
	n := time.Duration(len(p.Rows))
	avg.Treap /= n
	avg.AVL /= n
	return avg
}

// Report is the outcome of Runner.Run.
type Report struct {
	DatasetSize    int
	Runs           int
	Seed           uint64
	DeleteFraction float64
	Phases         []PhaseResult
}

// Encode encodes the report in the given format.
func (r *Report) Encode(format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatText:
		if err := r.Render(&buf); err != nil {
			return nil, err
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r.document()); err != nil {
			return nil, errors.Wrap(err, "encode yaml report")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "encode yaml report")
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "encode %q", format)
	}
	return buf.Bytes(), nil
}

const separator = "--------------------------------------------------"

// Render writes the report as fixed-width tables, one per phase, times in
// seconds.
func (r *Report) Render(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("dataset size %d, runs %d, seed %d\n", r.DatasetSize, r.Runs, r.Seed)
	for _, p := range r.Phases {
		ew.printf("\n=== %s ===\n", strings.ToUpper(string(p.Phase)))
		ew.printf("%-12s %-12s %-12s %-12s\n", "Test", "Treap (s)", "AVL (s)", "Ratio T/A")
		ew.printf("%s\n", separator)
		for _, row := range p.Rows {
			ew.row(row)
		}
		ew.printf("%s\n", separator)
		ew.row(p.Average())
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) row(r Row) {
	ew.printf("%-12s %-12.6f %-12.6f %-12.2f\n", r.Dataset, r.Treap.Seconds(), r.AVL.Seconds(), r.Ratio())
}

type yamlRow struct {
	Dataset      string  `yaml:"dataset"`
	TreapSeconds float64 `yaml:"treap_seconds"`
	AVLSeconds   float64 `yaml:"avl_seconds"`
	Ratio        float64 `yaml:"ratio"`
}

type yamlPhase struct {
	Phase   Phase     `yaml:"phase"`
	Rows    []yamlRow `yaml:"rows"`
	Average yamlRow   `yaml:"average"`
}

type yamlReport struct {
	DatasetSize    int         `yaml:"dataset_size"`
	Runs           int         `yaml:"runs"`
	Seed           uint64      `yaml:"seed"`
	DeleteFraction float64     `yaml:"delete_fraction"`
	Phases         []yamlPhase `yaml:"phases"`
}

func toYAMLRow(r Row) yamlRow {
	return yamlRow{
		Dataset:      r.Dataset,
		TreapSeconds: r.Treap.Seconds(),
		AVLSeconds:   r.AVL.Seconds(),
		Ratio:        r.Ratio(),
	}
}

func (r *Report) document() yamlReport {
	doc := yamlReport{
		DatasetSize:    r.DatasetSize,
		Runs:           r.Runs,
		Seed:           r.Seed,
		DeleteFraction: r.DeleteFraction,
		Phases:         make([]yamlPhase, 0, len(r.Phases)),
	}
	for _, p := range r.Phases {
		yp := yamlPhase{
			Phase:   p.Phase,
			Rows:    make([]yamlRow, 0, len(p.Rows)),
			Average: toYAMLRow(p.Average()),
		}
		for _, row := range p.Rows {
			yp.Rows = append(yp.Rows, toYAMLRow(row))
		}
		doc.Phases = append(doc.Phases, yp)
	}
	return doc
}

// SaveReport encodes report and writes it to filename on fs. The directory is
// created when missing, and an existing file is only replaced once the new one
// is fully written.
func SaveReport(fs FileSystem, filename string, report *Report, format Format) error {
	data, err := report.Encode(format)
	if err != nil {
		return err
	}
	return writeFile(fs, filename, data)
}

// Save is SaveReport on the runner's file system.
func (r *Runner) Save(report *Report, filename string, format Format) error {
	if err := SaveReport(r.opt.fs, filename, report, format); err != nil {
		return err
	}
	r.opt.logger.Log("report saved to %s", filename)
	return nil
}
