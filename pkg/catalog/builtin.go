package catalog

import "github.com/nvalerio/flowforge/pkg/domain"

// Default returns a catalog seeded with the built-in schema table. The
// table covers the integrations the graph builder emits plus the common
// flow-control types; everything else falls through the open-world path.
func Default() *Catalog {
	c := New()
	for tag, s := range builtin {
		c.Register(tag, s)
	}
	return c
}

var builtin = map[string]Schema{
	domain.TypeHTTPRequest: {
		Required:                 []string{"method", "url"},
		Optional:                 []string{"authentication", "options", "bodyParametersJson", "headerParametersJson"},
		ErrorHandlingRecommended: true,
		TypicalParameters: map[string]any{
			"method":  "GET",
			"url":     "https://api.example.com/endpoint",
			"options": map[string]any{},
		},
	},
	domain.TypeOpenAI: {
		Required:           []string{"resource", "operation"},
		Optional:           []string{"options", "prompt", "model"},
		RequiresCredential: true,
		CredentialKind:     "openAiApi",
		TypicalParameters: map[string]any{
			"resource":  "text",
			"operation": "complete",
			"options":   map[string]any{"model": "gpt-4", "temperature": 0.7},
		},
	},
	"@n8n/n8n-nodes-langchain.agent": {
		Required: []string{"promptType"},
		Optional: []string{"text", "options"},
	},
	"@n8n/n8n-nodes-langchain.chatOpenAi": {
		Optional:           []string{"model", "temperature", "maxTokens"},
		RequiresCredential: true,
		CredentialKind:     "openAiApi",
	},
	domain.TypeIf: {
		Required: []string{"conditions"},
		Optional: []string{"options"},
	},
	domain.TypeSwitch: {
		Required: []string{"mode"},
		Optional: []string{"rules", "output"},
	},
	domain.TypeMerge: {
		Optional: []string{"mode", "options"},
	},
	domain.TypeSet: {
		Optional: []string{"values", "options"},
	},
	domain.TypeCode: {
		Required: []string{"mode"},
		Optional: []string{"jsCode", "pythonCode"},
	},
	domain.TypeFunction: {
		Required: []string{"functionCode"},
	},
	domain.TypeGoogleSheets: {
		Required:                 []string{"resource", "operation"},
		Optional:                 []string{"sheetId", "range", "documentId"},
		RequiresCredential:       true,
		CredentialKind:           "googleSheetsOAuth2Api",
		ErrorHandlingRecommended: true,
	},
	domain.TypeGmail: {
		Required:                 []string{"resource", "operation"},
		Optional:                 []string{"sendTo", "subject", "message"},
		RequiresCredential:       true,
		CredentialKind:           "gmailOAuth2",
		ErrorHandlingRecommended: true,
	},
	domain.TypeSlack: {
		Required:                 []string{"resource", "operation"},
		Optional:                 []string{"channel", "text", "username"},
		RequiresCredential:       true,
		CredentialKind:           "slackApi",
		ErrorHandlingRecommended: true,
	},
	domain.TypePostgres: {
		Required:                 []string{"operation"},
		Optional:                 []string{"table", "query", "columns"},
		RequiresCredential:       true,
		CredentialKind:           "postgres",
		ErrorHandlingRecommended: true,
	},
	domain.TypeMySQL: {
		Required:                 []string{"operation"},
		Optional:                 []string{"table", "query", "columns"},
		RequiresCredential:       true,
		CredentialKind:           "mySql",
		ErrorHandlingRecommended: true,
	},
	domain.TypeWebhook: {
		Optional: []string{"path", "httpMethod", "responseMode"},
	},
	domain.TypeScheduleTrigger: {
		Optional: []string{"rule", "triggerTimes"},
	},
	domain.TypeManualTrigger: {},
	domain.TypeErrorTrigger:  {},
	domain.TypeEmailTrigger: {
		Optional:           []string{"mailbox", "options"},
		RequiresCredential: true,
		CredentialKind:     "imap",
	},
	domain.TypeStickyNote: {
		Optional: []string{"content", "height", "width"},
	},
	domain.TypeWait: {
		Required: []string{"resume"},
		Optional: []string{"amount", "unit"},
	},
}
