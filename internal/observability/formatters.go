// Package observability renders ranking results for the CLI.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jonathan/job-matcher/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output of ranking results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// factorColumns fixes the column order of the factor table.
var factorColumns = []struct {
	name  string
	title string
}{
	{types.FactorSkillMatch, "Skills"},
	{types.FactorLocationMatch, "Location"},
	{types.FactorExperienceMatch, "Experience"},
	{types.FactorSalaryMatch, "Salary"},
	{types.FactorCompanyMatch, "Company"},
}

// Ranking describes one ranking run for display.
type Ranking struct {
	// Direction is "postings" when the anchor is a candidate, "candidates" when it is a posting.
	Direction string
	AnchorID  string
	Limit     int
	Results   []types.MatchResult
}

// counterpart returns the id of the ranked side of r.
func (rk *Ranking) counterpart(r types.MatchResult) string {
	if rk.Direction == "candidates" {
		return r.CandidateID
	}
	return r.PostingID
}

// PrintRanking writes a summary box followed by one table row per result.
func (p *Printer) PrintRanking(rk *Ranking) error {
	header := "Posting"
	anchor := "Candidate"
	if rk.Direction == "candidates" {
		header, anchor = "Candidate", "Posting"
	}

	p.printBox("Recommendations",
		fmt.Sprintf("%s: %s\nLimit:    %d\nReturned: %d", anchor, rk.AnchorID, rk.Limit, len(rk.Results)))

	if len(rk.Results) == 0 {
		_, err := fmt.Fprintln(p.out, "No matches.")
		return err
	}

	table := tablewriter.NewWriter(p.out)
	columns := []any{"#", header, "Score"}
	for _, c := range factorColumns {
		columns = append(columns, c.title)
	}
	table.Header(columns...)

	for i, r := range rk.Results {
		factors := r.MatchFactors.AsMap()
		row := []string{strconv.Itoa(i + 1), rk.counterpart(r), formatScore(r.MatchScore)}
		for _, c := range factorColumns {
			row = append(row, formatScore(factors[c.name]))
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to add table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// PrintJSON writes the results as an indented JSON array.
func (p *Printer) PrintJSON(results []types.MatchResult) error {
	if results == nil {
		results = []types.MatchResult{}
	}
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
