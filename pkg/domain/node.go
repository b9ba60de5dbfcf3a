package domain

import "strings"

// Well-known node type tags. The catalog of types is open-world: these
// constants cover the tags the builder and repair passes emit themselves,
// not the full universe of integrations a candidate graph may use.
const (
	basePrefix = "n8n-nodes-base."

	TypeWebhook         = basePrefix + "webhook"
	TypeManualTrigger   = basePrefix + "manualTrigger"
	TypeScheduleTrigger = basePrefix + "scheduleTrigger"
	TypeErrorTrigger    = basePrefix + "errorTrigger"
	TypeEmailTrigger    = basePrefix + "emailReadImap"

	TypeIf          = basePrefix + "if"
	TypeSwitch      = basePrefix + "switch"
	TypeMerge       = basePrefix + "merge"
	TypeSet         = basePrefix + "set"
	TypeCode        = basePrefix + "code"
	TypeFunction    = basePrefix + "function"
	TypeWait        = basePrefix + "wait"
	TypeHTTPRequest = basePrefix + "httpRequest"
	TypeStickyNote  = basePrefix + "stickyNote"

	TypeGmail        = basePrefix + "gmail"
	TypeSlack        = basePrefix + "slack"
	TypeGoogleSheets = basePrefix + "googleSheets"
	TypePostgres     = basePrefix + "postgres"
	TypeMySQL        = basePrefix + "mysql"
	TypeOpenAI       = basePrefix + "openAi"

	// triggerSuffix flags entry-point node types by convention.
	triggerSuffix = "Trigger"
)

// OnError actions understood by the execution engine the graph targets.
const (
	OnErrorContinue = "continueRegularOutput"
	OnErrorStop     = "stopWorkflow"
)

// Credential is a named reference from a node to an externally managed
// secret of a specific kind. The ID is resolved by the importing system;
// this core never authenticates against anything.
type Credential struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Node represents a single step in a workflow graph.
//
// The error-policy fields (OnError, RetryOnFail, MaxTries) are flattened
// onto the node to match the wire format of the target automation engine.
type Node struct {
	ID          string                `json:"id" yaml:"id"`
	Name        string                `json:"name" yaml:"name"`
	Type        string                `json:"type" yaml:"type"`
	TypeVersion int                   `json:"typeVersion" yaml:"typeVersion"`
	Position    [2]int                `json:"position" yaml:"position,flow"`
	Parameters  map[string]any        `json:"parameters" yaml:"parameters"`
	Credentials map[string]Credential `json:"credentials,omitempty" yaml:"credentials,omitempty"`

	// WebhookID is only set on webhook entry nodes.
	WebhookID string `json:"webhookId,omitempty" yaml:"webhookId,omitempty"`

	OnError     string `json:"onError,omitempty" yaml:"onError,omitempty"`
	RetryOnFail bool   `json:"retryOnFail,omitempty" yaml:"retryOnFail,omitempty"`
	MaxTries    int    `json:"maxTries,omitempty" yaml:"maxTries,omitempty"`

	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// IsAnnotation reports whether the node is documentation-only (a sticky
// note). Annotation nodes are excluded from connectivity and error-handling
// checks.
func (n *Node) IsAnnotation() bool {
	return n.Type == TypeStickyNote
}

// IsSource reports whether the node is a workflow entry point. Entry types
// follow the "...Trigger" suffix convention, with two grandfathered
// exceptions whose type tags predate it.
func (n *Node) IsSource() bool {
	if strings.HasSuffix(n.Type, triggerSuffix) {
		return true
	}
	return n.Type == TypeWebhook || n.Type == TypeEmailTrigger
}

// HasErrorPolicy reports whether any error-handling directive is set.
func (n *Node) HasErrorPolicy() bool {
	return n.OnError != "" || n.RetryOnFail
}

// HasCredential reports whether the node carries a binding under the given
// credential kind.
func (n *Node) HasCredential(kind string) bool {
	if kind == "" {
		return false
	}
	_, ok := n.Credentials[kind]
	return ok
}
