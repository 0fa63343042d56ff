package deck

import (
	"strings"
)

// Report describes the outcome of normalizing a questions file.
type Report struct {
	// Items are the accepted items in input order.
	Items []Item

	// Rejected holds the raw positions of dropped records.
	Rejected []int

	// Total is the number of raw records examined.
	Total int
}

// Summarize decodes a questions file and normalizes every record, keeping
// track of which positions were rejected. It returns an InputFormatError
// when the file cannot be parsed or is not an array.
func Summarize(data []byte, format Format) (*Report, error) {
	records, err := decodeArray("questions", questionsSchema, data, format)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(records)}
	for i, rec := range records {
		raw, ok := toRawItem(rec)
		if !ok {
			report.Rejected = append(report.Rejected, i)
			continue
		}
		item, ok := Normalize(raw, i)
		if !ok {
			report.Rejected = append(report.Rejected, i)
			continue
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// ParseQuestions decodes and normalizes a questions file. It fails with
// *InputFormatError for unparseable or non-array input and with
// *NoValidItemsError when every record is rejected.
func ParseQuestions(data []byte, format Format) ([]Item, error) {
	report, err := Summarize(data, format)
	if err != nil {
		return nil, err
	}
	if len(report.Items) == 0 {
		return nil, &NoValidItemsError{Kind: "questions", Total: report.Total}
	}
	return report.Items, nil
}

// ParseTrivia decodes a trivia file: an array of strings. Non-string and
// blank entries are dropped.
func ParseTrivia(data []byte, format Format) ([]string, error) {
	records, err := decodeArray("trivia", triviaSchema, data, format)
	if err != nil {
		return nil, err
	}

	var facts []string
	for _, rec := range records {
		s, ok := rec.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			facts = append(facts, s)
		}
	}
	if len(facts) == 0 {
		return nil, &NoValidItemsError{Kind: "trivia facts", Total: len(records)}
	}
	return facts, nil
}

func decodeArray(name string, schema map[string]any, data []byte, format Format) ([]any, error) {
	v, err := decode(data, format)
	if err != nil {
		return nil, &InputFormatError{Reason: "could not parse " + format.String(), Err: err}
	}
	if err := checkShape(name, schema, v); err != nil {
		return nil, &InputFormatError{Reason: "top-level value must be an array", Err: err}
	}
	records, ok := v.([]any)
	if !ok {
		return nil, &InputFormatError{Reason: "top-level value must be an array"}
	}
	return records, nil
}

// toRawItem accepts object records only.
func toRawItem(v any) (RawItem, bool) {
	switch m := v.(type) {
	case map[string]any:
		return RawItem(m), true
	case RawItem:
		return m, true
	}
	return nil, false
}
