// Package score implements the weighted quality-scoring engine for
// workflow graphs. Seven independently weighted checks compose a 0-100
// score; every failing check is turned into one actionable, quantified
// feedback directive. Scoring never fails: malformed or absent fields earn
// zero credit for the affected check instead of raising.
package score

import (
	"fmt"
	"sort"

	"github.com/nvalerio/flowforge/pkg/catalog"
	"github.com/nvalerio/flowforge/pkg/domain"
	"github.com/nvalerio/flowforge/pkg/validate"
)

// Check weights. They sum to 100.
const (
	MaxNodeCount     = 20
	MaxCredentials   = 15
	MaxParameters    = 15
	MaxErrorHandling = 20
	MaxConnectivity  = 5
	MaxDocumentation = 10
	MaxFlowFeatures  = 15
)

// Config carries the tunable scoring knobs. The zero value is unusable;
// start from DefaultConfig.
type Config struct {
	// Threshold is the minimum score for a graph to count as valid.
	Threshold int
	// MinErrorHandlingRatio is the acceptable share of processable nodes
	// carrying an error-policy.
	MinErrorHandlingRatio float64
	// MinAnnotations is the acceptable number of documentation nodes.
	MinAnnotations int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:             80,
		MinErrorHandlingRatio: 0.3,
		MinAnnotations:        5,
	}
}

// CheckResult is the outcome of one weighted check.
type CheckResult struct {
	Score   int     `json:"score"`
	Max     int     `json:"max"`
	Passed  bool    `json:"passed"`
	Message string  `json:"message"`
	Have    int     `json:"have"`
	Want    int     `json:"want"`
	Ratio   float64 `json:"ratio,omitempty"`
	// Names carries the node names or feature labels backing the message.
	Names []string `json:"names,omitempty"`
}

// Breakdown holds the seven check results in their canonical order.
type Breakdown struct {
	NodeCount     CheckResult `json:"nodeCount"`
	Credentials   CheckResult `json:"credentials"`
	Parameters    CheckResult `json:"parameters"`
	ErrorHandling CheckResult `json:"errorHandling"`
	Connectivity  CheckResult `json:"connectivity"`
	Documentation CheckResult `json:"documentation"`
	FlowFeatures  CheckResult `json:"flowFeatures"`
}

// Total sums the seven check scores.
func (b *Breakdown) Total() int {
	return b.NodeCount.Score + b.Credentials.Score + b.Parameters.Score +
		b.ErrorHandling.Score + b.Connectivity.Score + b.Documentation.Score +
		b.FlowFeatures.Score
}

// Report is the full quality verdict for one graph.
type Report struct {
	Score     int         `json:"score"`
	Valid     bool        `json:"valid"`
	Grade     string      `json:"grade"`
	Threshold int         `json:"threshold"`
	Breakdown Breakdown   `json:"breakdown"`
	Feedback  []Directive `json:"feedback,omitempty"`
}

// Scorer applies the weighted checks. Stateless after construction; safe
// for concurrent use across pipeline runs.
type Scorer struct {
	catalog   *catalog.Catalog
	validator *validate.Validator
	cfg       Config
}

// New creates a scorer over the given catalog and validator.
func New(c *catalog.Catalog, v *validate.Validator, cfg Config) *Scorer {
	return &Scorer{catalog: c, validator: v, cfg: cfg}
}

// Config returns the scorer's knobs.
func (s *Scorer) Config() Config { return s.cfg }

// Score runs all seven checks against the graph. A nil workflow earns
// zero credit everywhere rather than an error.
func (s *Scorer) Score(wf *domain.Workflow, tier Tier) Report {
	if wf == nil {
		wf = &domain.Workflow{}
	}

	b := Breakdown{
		NodeCount:     s.checkNodeCount(wf, tier),
		Credentials:   s.checkCredentials(wf),
		Parameters:    s.checkParameters(wf),
		ErrorHandling: s.checkErrorHandling(wf),
		Connectivity:  s.checkConnectivity(wf),
		Documentation: s.checkDocumentation(wf),
		FlowFeatures:  s.checkFlowFeatures(wf, tier),
	}

	total := b.Total()
	return Report{
		Score:     total,
		Valid:     total >= s.cfg.Threshold,
		Grade:     grade(total),
		Threshold: s.cfg.Threshold,
		Breakdown: b,
		Feedback:  feedback(&b),
	}
}

func (s *Scorer) checkNodeCount(wf *domain.Workflow, tier Tier) CheckResult {
	count := len(wf.Nodes)
	required := tier.MinNodes()

	var got int
	switch {
	case count >= 35:
		got = 20
	case count >= 25:
		got = 15
	case count >= 15:
		got = 10
	case count >= 10:
		got = 5
	}

	return CheckResult{
		Score:   got,
		Max:     MaxNodeCount,
		Passed:  count >= required,
		Have:    count,
		Want:    required,
		Message: fmt.Sprintf("node count: %d (required: %d)", count, required),
	}
}

func (s *Scorer) checkCredentials(wf *domain.Workflow) CheckResult {
	var requiring, bound int
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if !s.catalog.RequiresCredential(n.Type) {
			continue
		}
		requiring++
		if n.HasCredential(s.catalog.CredentialKind(n.Type)) {
			bound++
		}
	}

	if requiring == 0 {
		return CheckResult{
			Score:   MaxCredentials,
			Max:     MaxCredentials,
			Passed:  true,
			Ratio:   1,
			Message: "no credential-requiring nodes",
		}
	}

	ratio := float64(bound) / float64(requiring)
	var got int
	switch {
	case ratio >= 1.0:
		got = 15
	case ratio >= 0.8:
		got = 12
	case ratio >= 0.6:
		got = 9
	case ratio >= 0.4:
		got = 6
	}

	return CheckResult{
		Score:   got,
		Max:     MaxCredentials,
		Passed:  ratio >= 0.9,
		Have:    bound,
		Want:    requiring,
		Ratio:   ratio,
		Message: fmt.Sprintf("%d/%d credential-requiring nodes are bound", bound, requiring),
	}
}

func (s *Scorer) checkParameters(wf *domain.Workflow) CheckResult {
	var total, complete int
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.IsAnnotation() {
			continue
		}
		total++
		if len(s.validator.ValidateNode(n).Errors) == 0 {
			complete++
		}
	}

	ratio := 1.0
	if total > 0 {
		ratio = float64(complete) / float64(total)
	}

	var got int
	switch {
	case ratio >= 1.0:
		got = 15
	case ratio >= 0.9:
		got = 12
	case ratio >= 0.8:
		got = 9
	}

	return CheckResult{
		Score:   got,
		Max:     MaxParameters,
		Passed:  ratio >= 0.8,
		Have:    complete,
		Want:    total,
		Ratio:   ratio,
		Message: fmt.Sprintf("%d/%d nodes have complete parameters", complete, total),
	}
}

func (s *Scorer) checkErrorHandling(wf *domain.Workflow) CheckResult {
	var processable, withPolicy int
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.IsSource() || n.IsAnnotation() {
			continue
		}
		processable++
		if n.HasErrorPolicy() {
			withPolicy++
		}
	}

	if processable == 0 {
		return CheckResult{
			Max:     MaxErrorHandling,
			Message: "no processable nodes",
		}
	}

	ratio := float64(withPolicy) / float64(processable)
	var got int
	switch {
	case ratio >= 0.5:
		got = 20
	case ratio >= 0.4:
		got = 16
	case ratio >= 0.3:
		got = 12
	case ratio >= 0.2:
		got = 8
	}

	return CheckResult{
		Score:   got,
		Max:     MaxErrorHandling,
		Passed:  ratio >= s.cfg.MinErrorHandlingRatio,
		Have:    withPolicy,
		Want:    processable,
		Ratio:   ratio,
		Message: fmt.Sprintf("%d/%d processable nodes have error handling (%.0f%%)", withPolicy, processable, ratio*100),
	}
}

func (s *Scorer) checkConnectivity(wf *domain.Workflow) CheckResult {
	targets := wf.Connections.Targets()

	var needing int
	var unconnected []string
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.IsSource() || n.IsAnnotation() {
			continue
		}
		needing++
		if !targets[n.Name] {
			unconnected = append(unconnected, n.Name)
		}
	}
	sort.Strings(unconnected)

	result := CheckResult{
		Max:     MaxConnectivity,
		Have:    needing - len(unconnected),
		Want:    needing,
		Names:   unconnected,
		Message: fmt.Sprintf("%d/%d non-source nodes have an incoming connection", needing-len(unconnected), needing),
	}
	if len(unconnected) == 0 {
		result.Score = MaxConnectivity
		result.Passed = true
	}
	return result
}

func (s *Scorer) checkDocumentation(wf *domain.Workflow) CheckResult {
	count := wf.Annotations()

	var got int
	switch {
	case count >= 8:
		got = 10
	case count >= 5:
		got = 7
	case count >= 3:
		got = 4
	}

	return CheckResult{
		Score:   got,
		Max:     MaxDocumentation,
		Passed:  count >= s.cfg.MinAnnotations,
		Have:    count,
		Want:    s.cfg.MinAnnotations,
		Message: fmt.Sprintf("%d annotation notes (minimum: %d)", count, s.cfg.MinAnnotations),
	}
}

// Flow feature labels reported by checkFlowFeatures.
const (
	FeatureBranching      = "conditional branching"
	FeatureMerge          = "parallel merge"
	FeatureTransformation = "data transformation"
	FeatureCustomLogic    = "custom logic"
)

func (s *Scorer) checkFlowFeatures(wf *domain.Workflow, tier Tier) CheckResult {
	var features []string
	if wf.HasType(domain.TypeIf, domain.TypeSwitch) {
		features = append(features, FeatureBranching)
	}
	if wf.HasType(domain.TypeMerge) {
		features = append(features, FeatureMerge)
	}
	if wf.HasType(domain.TypeSet) {
		features = append(features, FeatureTransformation)
	}
	if wf.HasType(domain.TypeCode, domain.TypeFunction) {
		features = append(features, FeatureCustomLogic)
	}

	count := len(features)
	var got int
	var want int
	if tier == TierLight {
		want = 1
		switch {
		case count >= 2:
			got = 15
		case count >= 1:
			got = 10
		default:
			got = 5
		}
	} else {
		want = 2
		switch {
		case count >= 3:
			got = 15
		case count >= 2:
			got = 10
		case count >= 1:
			got = 5
		}
	}

	msg := "flow features: none"
	if count > 0 {
		msg = fmt.Sprintf("flow features: %v", features)
	}
	return CheckResult{
		Score:   got,
		Max:     MaxFlowFeatures,
		Passed:  count >= want,
		Have:    count,
		Want:    want,
		Names:   features,
		Message: msg,
	}
}

func grade(score int) string {
	switch {
	case score >= 90:
		return "A (Excellent)"
	case score >= 80:
		return "B (Good)"
	case score >= 70:
		return "C (Acceptable)"
	case score >= 60:
		return "D (Needs Improvement)"
	default:
		return "F (Poor)"
	}
}
