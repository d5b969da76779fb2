package segmentation

// Rule is one entry of the rule cascade.
type Rule struct {
	Number int
	Name   string
	Match  func(Result) bool
}

// FallbackRule is assigned when no rule in the cascade matches.
const FallbackRule = 8

// cascade is the rule cascade in priority order. Data quality and life cycle
// entries come before variability, volume, trend and seasonality.
var cascade = []Rule{
	{1, "intermittent", func(r Result) bool { return r.Intermittent }},
	{2, "discontinuous", func(r Result) bool { return r.PLCStatus == Discontinuous }},
	{3, "new launch", func(r Result) bool { return r.PLCStatus == NewLaunch }},
	{4, "stable variability", func(r Result) bool { return r.CovClass == CovX }},
	{5, "low volume", func(r Result) bool { return r.VolumeClass == VolumeC }},
	{6, "trending", func(r Result) bool { return r.Trend != TrendNone }},
	{7, "seasonal", func(r Result) bool { return r.Seasonal }},
}

// Cascade returns a copy of the rule cascade in priority order.
func Cascade() []Rule {
	out := make([]Rule, len(cascade))
	copy(out, cascade)
	return out
}

// AssignRule returns the number of the first rule matching r, or
// FallbackRule. Only the categorical fields of r are read.
func AssignRule(r Result) int {
	for _, rule := range cascade {
		if rule.Match(r) {
			return rule.Number
		}
	}
	return FallbackRule
}
