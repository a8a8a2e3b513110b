package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-zajac/contribreport/internal/app"
)

const (
	filenameLayout = "01_02_2006_15_04"
	listSeparator  = ", "
)

// Header is the first row of every report.
var Header = []string{"Login", "Name", "Email", "Repositories", "Languages"}

// Writer writes reports as csv files.
type Writer struct {
	now func() time.Time
}

var _ app.ReportWriter = &Writer{}

// NewWriter creates new Writer instance.
func NewWriter() *Writer {
	return &Writer{
		now: time.Now,
	}
}

// Filename returns report file name for given time.
func Filename(t time.Time) string {
	return fmt.Sprintf("report_%s.csv", t.Format(filenameLayout))
}

// Write stores report in dir, creating dir if needed. Returns path of the written file.
// The file appears only when it is completely written.
func (w *Writer) Write(r *app.Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".report_*.csv")
	if err != nil {
		return "", fmt.Errorf("creating temporary report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing report file: %w", err)
	}

	path := filepath.Join(dir, Filename(w.now()))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("moving report file: %w", err)
	}

	return path, nil
}

// Encode writes report rows as csv into out.
func Encode(out io.Writer, r *app.Report) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range r.Contributors() {
		row := []string{
			c.User.Login,
			c.User.Name,
			c.User.Email,
			strings.Join(c.Repos, listSeparator),
			strings.Join(c.Languages, listSeparator),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", c.User.Login, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// Row is a single parsed report row.
type Row struct {
	Login        string
	Name         string
	Email        string
	Repositories []string
	Languages    []string
}

// Read parses report file.
func Read(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses csv report from in.
func Decode(in io.Reader) ([]Row, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = len(Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("missing header")
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			Login:        rec[0],
			Name:         rec[1],
			Email:        rec[2],
			Repositories: splitList(rec[3]),
			Languages:    splitList(rec[4]),
		})
	}

	return rows, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, listSeparator)
}
