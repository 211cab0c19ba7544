package table

import "strings"

const (
	filterFieldDate          = "date"
	filterFieldAction        = "Action"
	filterFieldProductNumber = "品番"

	operatorGreaterOrEqual  = "$gte"
	operatorLessOrEqual     = "$lte"
	operatorRegex           = "$regex"
	operatorRegexOptions    = "$options"
	regexOptionsInsensitive = "i"
)

// LogFilters are the user-facing submitted-log filter inputs.
type LogFilters struct {
	FromDate      string `json:"fromDate"`
	ToDate        string `json:"toDate"`
	Action        string `json:"action"`
	ProductNumber string `json:"productNumber"`
}

// Empty reports whether no filter input was provided.
func (filters LogFilters) Empty() bool {
	return strings.TrimSpace(filters.FromDate) == "" &&
		strings.TrimSpace(filters.ToDate) == "" &&
		strings.TrimSpace(filters.Action) == "" &&
		strings.TrimSpace(filters.ProductNumber) == ""
}

// BackendFilters builds the query document the backend expects: date bounds
// as $gte/$lte, an exact Action match, and a case-insensitive substring match
// on the product number. One-sided date ranges produce only the bound given.
func (filters LogFilters) BackendFilters() map[string]any {
	backendFilters := map[string]any{}

	fromDate := strings.TrimSpace(filters.FromDate)
	toDate := strings.TrimSpace(filters.ToDate)
	if fromDate != "" || toDate != "" {
		dateRange := map[string]any{}
		if fromDate != "" {
			dateRange[operatorGreaterOrEqual] = fromDate
		}
		if toDate != "" {
			dateRange[operatorLessOrEqual] = toDate
		}
		backendFilters[filterFieldDate] = dateRange
	}

	if action := strings.TrimSpace(filters.Action); action != "" {
		backendFilters[filterFieldAction] = action
	}

	if productNumber := strings.TrimSpace(filters.ProductNumber); productNumber != "" {
		backendFilters[filterFieldProductNumber] = map[string]any{
			operatorRegex:        productNumber,
			operatorRegexOptions: regexOptionsInsensitive,
		}
	}

	return backendFilters
}
