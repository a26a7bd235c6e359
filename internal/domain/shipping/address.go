package shipping

import (
	"fmt"
	"regexp"
	"strings"
)

// Address parsing patterns. The locality pattern splits "City, State 134003"
// style lines into city and state by matching two non-digit runs around a
// comma.
var (
	pincodePattern  = regexp.MustCompile(`(\d{6})`)
	localityPattern = regexp.MustCompile(`([^,\d]+),\s*([^,\d]+)`)
	nonDigitPattern = regexp.MustCompile(`[^0-9]`)
)

// ParsedAddress is the structured form of a free-text shipping address
type ParsedAddress struct {
	Name       string
	Phone      string // digits only
	Street     string // street lines joined with ", "
	City       string
	State      string
	PostalCode string // 6-digit pincode
}

// ProfileFallback supplies account-profile values used when the address text
// omits the name or phone line.
type ProfileFallback struct {
	Name  string
	Phone string
}

// AddressValidationError reports which required address fields could not be
// extracted from the raw text.
type AddressValidationError struct {
	MissingFields []string
	RawAddress    string
}

// Error implements the error interface
func (e *AddressValidationError) Error() string {
	return fmt.Sprintf("invalid shipping address format: missing %s", strings.Join(e.MissingFields, ", "))
}

// ParseAddress extracts structured fields from a raw, newline-delimited
// shipping address block. The format is conventional, not schematic: line 0
// is the customer name, line 1 the phone number, and the remaining lines hold
// the street address plus one locality line in "City, State Pincode" form.
//
// The locality line is identified as the first line at index >= 2 containing
// a run of 6 consecutive digits. A street line that happens to contain such a
// run (a unit number, say) is therefore consumed as the locality line; this
// is a known limitation of the format, kept for compatibility with addresses
// already stored in this shape.
//
// Parsing never returns partial data: when the pincode, city, or state cannot
// be extracted, an *AddressValidationError naming the missing fields is
// returned.
func ParseAddress(raw string, fallback ProfileFallback) (*ParsedAddress, error) {
	lines := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	name := fallback.Name
	if len(lines) > 0 {
		name = lines[0]
	}

	phone := fallback.Phone
	if len(lines) > 1 {
		phone = lines[1]
	}
	phone = nonDigitPattern.ReplaceAllString(phone, "")

	var (
		pincode     string
		city        string
		state       string
		streetLines []string
	)

	for i, line := range lines {
		// Name and phone lines
		if i <= 1 {
			continue
		}

		if m := pincodePattern.FindStringSubmatch(line); m != nil {
			pincode = m[1]
			if loc := localityPattern.FindStringSubmatch(line); loc != nil {
				city = strings.TrimSpace(loc[1])
				state = strings.TrimSpace(loc[2])
			}
		} else {
			streetLines = append(streetLines, line)
		}
	}

	missing := make([]string, 0)
	if pincode == "" {
		missing = append(missing, "pincode")
	}
	if city == "" {
		missing = append(missing, "city")
	}
	if state == "" {
		missing = append(missing, "state")
	}
	if len(missing) > 0 {
		return nil, &AddressValidationError{MissingFields: missing, RawAddress: raw}
	}

	return &ParsedAddress{
		Name:       name,
		Phone:      phone,
		Street:     strings.Join(streetLines, ", "),
		City:       city,
		State:      state,
		PostalCode: pincode,
	}, nil
}
