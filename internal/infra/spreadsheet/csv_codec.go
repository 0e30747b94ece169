// Package spreadsheet implements the portfolio's tabular interchange format.
// The column headers are the literal dashboard headers, so a sheet exported
// here re-imports unchanged.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vendorwatch/internal/domain/entity"

	"github.com/pkg/errors"
)

// Column headers, in template order.
const (
	colBuildingName     = "Building Name"
	colAddress          = "Address"
	colCity             = "City"
	colState            = "State"
	colZip              = "Zip"
	colArea             = "Area"
	colRegion           = "Region"
	colMarket           = "Market"
	colManagerName      = "Manager Name"
	colManagerEmail     = "Manager Email"
	colManagerPhone     = "Manager Phone"
	colRPMName          = "Regional Manager Name"
	colRPMEmail         = "Regional Manager Email"
	colRPMPhone         = "Regional Manager Phone"
	colUnitCount        = "Unit Count"
	colServiceProvider  = "Service Provider"
	colVendorRating     = "Vendor Rating"
	colAccountNumber    = "Account Number"
	colCurrentPrice     = "Current Price"
	colBillingFrequency = "Billing Frequency"
	colContractStart    = "Contract Start Date"
	colContractEnd      = "Contract End Date"
	colInitialTerm      = "Initial Term (Months)"
	colRenewalTerm      = "Renewal Term (Months)"
	colWindowNotBefore  = "Cancellation Window - Not Before"
	colWindowNotAfter   = "Cancellation Window - Not After"
	colAutoRenew        = "Auto Renew"
	colPriceCap         = "Price Cap %"
	colTermination      = "Early Termination Penalty"
	colNationalContract = "On National Contract"
)

// TemplateHeaders is the full header row of the import template.
var TemplateHeaders = []string{
	colBuildingName, colAddress, colCity, colState, colZip,
	colArea, colRegion, colMarket,
	colManagerName, colManagerEmail, colManagerPhone,
	colRPMName, colRPMEmail, colRPMPhone,
	colUnitCount,
	colServiceProvider, colVendorRating, colAccountNumber, colCurrentPrice, colBillingFrequency,
	colContractStart, colContractEnd, colInitialTerm, colRenewalTerm,
	colWindowNotBefore, colWindowNotAfter,
	colAutoRenew, colPriceCap, colTermination, colNationalContract,
}

// requiredHeaders must be present for a sheet to be importable at all. The
// remaining columns are optional; absent values surface later as missing data.
var requiredHeaders = []string{colBuildingName}

// Codec parses and renders portfolio sheets.
type Codec struct{}

// NewCodec creates a portfolio sheet codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Parse reads a portfolio sheet into property entities. Malformed cell values
// default to their zero value rather than aborting the row set; the
// classifier reports them as missing data downstream.
func (c *Codec) Parse(r io.Reader) ([]*entity.Property, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header row")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeHeader(name)] = i
	}

	for _, required := range requiredHeaders {
		if _, ok := index[normalizeHeader(required)]; !ok {
			return nil, errors.Errorf("missing required column %q", required)
		}
	}

	cell := func(record []string, column string) string {
		i, ok := index[normalizeHeader(column)]
		if !ok || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	var properties []*entity.Property
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, errors.Wrap(readErr, "failed to read sheet row")
		}

		if cell(record, colBuildingName) == "" {
			// Blank filler rows are common in exported sheets.
			continue
		}

		p := &entity.Property{
			Name:    cell(record, colBuildingName),
			Address: cell(record, colAddress),
			City:    cell(record, colCity),
			State:   cell(record, colState),
			Zip:     cell(record, colZip),
			Area:    cell(record, colArea),
			Region:  cell(record, colRegion),
			Market:  cell(record, colMarket),
			Manager: entity.Personnel{
				Name:  cell(record, colManagerName),
				Email: cell(record, colManagerEmail),
				Phone: cell(record, colManagerPhone),
			},
			RegionalManager: entity.Personnel{
				Name:  cell(record, colRPMName),
				Email: cell(record, colRPMEmail),
				Phone: cell(record, colRPMPhone),
			},
			UnitCount: parseInt(cell(record, colUnitCount)),
			Vendor: entity.Vendor{
				Name:             cell(record, colServiceProvider),
				Rating:           parseInt(cell(record, colVendorRating)),
				AccountNumber:    cell(record, colAccountNumber),
				CurrentPrice:     parseFloat(cell(record, colCurrentPrice)),
				BillingFrequency: cell(record, colBillingFrequency),
			},
			Terms: entity.ContractTerms{
				StartDate:               cell(record, colContractStart),
				EndDate:                 cell(record, colContractEnd),
				InitialTermMonths:       parseInt(cell(record, colInitialTerm)),
				RenewalTermMonths:       parseInt(cell(record, colRenewalTerm)),
				CancellationWindow:      combineWindow(cell(record, colWindowNotBefore), cell(record, colWindowNotAfter)),
				AutoRenew:               parseBool(cell(record, colAutoRenew)),
				PriceCapPercent:         parseFloat(cell(record, colPriceCap)),
				EarlyTerminationPenalty: cell(record, colTermination),
			},
			OnNationalContract: parseBool(cell(record, colNationalContract)),
		}

		properties = append(properties, p)
	}

	return properties, nil
}

// WriteTemplate writes the empty import template: the header row only.
func (c *Codec) WriteTemplate(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(TemplateHeaders); err != nil {
		return errors.Wrap(err, "failed to write template header")
	}
	writer.Flush()

	return errors.Wrap(writer.Error(), "failed to flush template")
}

// Export renders the portfolio under the template headers.
func (c *Codec) Export(w io.Writer, properties []*entity.Property) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(TemplateHeaders); err != nil {
		return errors.Wrap(err, "failed to write export header")
	}

	for _, p := range properties {
		notBefore, notAfter := splitWindow(p.Terms.CancellationWindow)
		record := []string{
			p.Name, p.Address, p.City, p.State, p.Zip,
			p.Area, p.Region, p.Market,
			p.Manager.Name, p.Manager.Email, p.Manager.Phone,
			p.RegionalManager.Name, p.RegionalManager.Email, p.RegionalManager.Phone,
			formatInt(p.UnitCount),
			p.Vendor.Name, formatInt(p.Vendor.Rating), p.Vendor.AccountNumber,
			formatFloat(p.Vendor.CurrentPrice), p.Vendor.BillingFrequency,
			p.Terms.StartDate, p.Terms.EndDate,
			formatInt(p.Terms.InitialTermMonths), formatInt(p.Terms.RenewalTermMonths),
			notBefore, notAfter,
			formatBool(p.Terms.AutoRenew), formatFloat(p.Terms.PriceCapPercent),
			p.Terms.EarlyTerminationPenalty,
			formatBool(p.OnNationalContract),
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "failed to write export row")
		}
	}
	writer.Flush()

	return errors.Wrap(writer.Error(), "failed to flush export")
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// combineWindow joins the two window columns into the dashboard's free-text
// form, e.g. "120 - 90 Days".
func combineWindow(notBefore, notAfter string) string {
	before := parseInt(notBefore)
	after := parseInt(notAfter)

	switch {
	case before > 0 && after > 0:
		return fmt.Sprintf("%d - %d Days", before, after)
	case before > 0:
		return fmt.Sprintf("%d Days", before)
	case after > 0:
		return fmt.Sprintf("%d Days", after)
	default:
		return ""
	}
}

// splitWindow is the inverse of combineWindow for export.
func splitWindow(window string) (notBefore, notAfter string) {
	var numbers []int
	for _, field := range strings.FieldsFunc(window, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		if n, err := strconv.Atoi(field); err == nil {
			numbers = append(numbers, n)
		}
	}

	switch len(numbers) {
	case 0:
		return "", ""
	case 1:
		return strconv.Itoa(numbers[0]), strconv.Itoa(numbers[0])
	default:
		lo, hi := numbers[0], numbers[0]
		for _, n := range numbers[1:] {
			if n < lo {
				lo = n
			}
			if n > hi {
				hi = n
			}
		}

		return strconv.Itoa(hi), strconv.Itoa(lo)
	}
}

func parseInt(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	return n
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "x":
		return true
	default:
		return false
	}
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}

	return strconv.Itoa(n)
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}

	return "No"
}
