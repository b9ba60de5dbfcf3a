package assemble

import (
	"github.com/nvalerio/flowforge/pkg/domain"
)

func (b *Builder) triggerNode(req Requirements, cur *cursor) domain.Node {
	var n domain.Node
	switch req.Trigger {
	case "webhook":
		path := req.WebhookPath
		if path == "" {
			path = "workflow-trigger"
		}
		n = domain.Node{
			Name:      "Webhook Trigger",
			Type:      domain.TypeWebhook,
			WebhookID: b.newID(),
			Parameters: map[string]any{
				"httpMethod":   "POST",
				"path":         path,
				"responseMode": "onReceived",
				"options":      map[string]any{},
			},
		}
	case "schedule":
		freq := req.ScheduleFrequency
		if freq == "" {
			freq = "hour"
		}
		n = domain.Node{
			Name: "Schedule Trigger",
			Type: domain.TypeScheduleTrigger,
			Parameters: map[string]any{
				"rule": map[string]any{
					"interval": []any{map[string]any{"field": freq}},
				},
			},
		}
	case "email":
		n = domain.Node{
			Name: "Email Trigger",
			Type: domain.TypeEmailTrigger,
			Parameters: map[string]any{
				"mailbox": "INBOX",
				"options": map[string]any{"allowUnauthorizedCerts": false},
			},
			Credentials: map[string]domain.Credential{
				"imap": {ID: "{{CREDENTIAL_ID}}", Name: "IMAP account"},
			},
		}
	default:
		n = domain.Node{
			Name:       "Manual Trigger",
			Type:       domain.TypeManualTrigger,
			Parameters: map[string]any{},
		}
	}
	b.place(&n, cur)
	return n
}

func (b *Builder) authNode(cur *cursor) domain.Node {
	n := domain.Node{
		Name: "Validate API Key",
		Type: domain.TypeFunction,
		Parameters: map[string]any{
			"functionCode": `// Validate the API key from the request headers.
const provided = $input.item.json.headers?.['x-api-key'] ||
  $input.item.json.headers?.['authorization']?.replace('Bearer ', '');
const validKeys = (process.env.VALID_API_KEYS || '').split(',');
if (!validKeys.includes(provided)) {
  throw new Error('Invalid or missing API key');
}
return { ...$input.item.json, authenticated: true, timestamp: new Date().toISOString() };`,
		},
	}
	b.place(&n, cur)
	return n
}

// validationFlow builds: Validate Data -> Is Valid? with the false branch
// feeding an error-logging sink one row below the main path. The IF node
// is the stage exit; downstream stages chain off its true output.
func (b *Builder) validationFlow(cur *cursor) stage {
	conns := domain.ConnectionMap{}

	validateNode := domain.Node{
		Name: "Validate Data",
		Type: domain.TypeFunction,
		Parameters: map[string]any{
			"functionCode": `// Required-field and format validation.
const item = $input.item.json;
const errors = [];
for (const field of ['email', 'name']) {
  if (!item[field] || String(item[field]).trim() === '') {
    errors.push('Missing required field: ' + field);
  }
}
if (item.email && !/^[^\s@]+@[^\s@]+\.[^\s@]+$/.test(item.email)) {
  errors.push('Invalid email format');
}
return { ...item, validation: { is_valid: errors.length === 0, errors, validated_at: new Date().toISOString() } };`,
		},
	}
	b.place(&validateNode, cur)

	ifNode := domain.Node{
		Name: "Is Valid?",
		Type: domain.TypeIf,
		Parameters: map[string]any{
			"conditions": map[string]any{
				"boolean": []any{map[string]any{
					"value1": "={{$json.validation.is_valid}}",
					"value2": true,
				}},
			},
		},
	}
	b.place(&ifNode, cur)
	conns.Connect(validateNode.Name, ifNode.Name)

	errNode := domain.Node{
		Name: "Log Validation Error",
		Type: domain.TypeFunction,
		Parameters: map[string]any{
			"functionCode": `return { error_type: 'validation_failed', errors: $json.validation.errors, data: $json, timestamp: new Date().toISOString() };`,
		},
	}
	errNode.ID = b.newID()
	errNode.TypeVersion = domain.DefaultTypeVersion
	errNode.Position = [2]int{cur.x, cur.y + stepY}
	conns.ConnectPort(ifNode.Name, errNode.Name, 1)

	return stage{
		nodes: []domain.Node{validateNode, ifNode, errNode},
		conns: conns,
		entry: validateNode.Name,
		exit:  ifNode.Name,
	}
}

// duplicateCheckFlow builds: database lookup -> Is New Record? The true
// output carries records not seen before.
func (b *Builder) duplicateCheckFlow(req Requirements, cur *cursor) stage {
	conns := domain.ConnectionMap{}
	dbType, dbKind := databaseType(req)

	checkNode := domain.Node{
		Name: "Check for Duplicates",
		Type: dbType,
		Parameters: map[string]any{
			"operation": "executeQuery",
			"query":     "SELECT id FROM records WHERE email = $1 LIMIT 1",
			"additionalFields": map[string]any{
				"queryParameters": "={{$json.email}}",
			},
		},
		Credentials: map[string]domain.Credential{
			dbKind: {ID: "{{CREDENTIAL_ID}}", Name: title(dbKind) + " database"},
		},
	}
	b.place(&checkNode, cur)

	ifNode := domain.Node{
		Name: "Is New Record?",
		Type: domain.TypeIf,
		Parameters: map[string]any{
			"conditions": map[string]any{
				"number": []any{map[string]any{
					"value1":    "={{$json.length || 0}}",
					"operation": "equal",
					"value2":    0,
				}},
			},
		},
	}
	b.place(&ifNode, cur)
	conns.Connect(checkNode.Name, ifNode.Name)

	return stage{
		nodes: []domain.Node{checkNode, ifNode},
		conns: conns,
		entry: checkNode.Name,
		exit:  ifNode.Name,
	}
}

func (b *Builder) scoringNode(cur *cursor) domain.Node {
	n := domain.Node{
		Name: "Calculate Score",
		Type: domain.TypeFunction,
		Parameters: map[string]any{
			"functionCode": `// Weighted record scoring with a priority bucket.
const item = $input.item.json;
let score = 0;
if (item.company_size > 1000) score += 40;
else if (item.company_size > 100) score += 30;
else if (item.company_size > 10) score += 20;
if (item.budget > 100000) score += 30;
else if (item.budget > 10000) score += 20;
const priority = score >= 80 ? 'high' : score >= 50 ? 'medium' : 'low';
return { ...item, score, priority, scored_at: new Date().toISOString() };`,
		},
	}
	b.place(&n, cur)
	return n
}

// branchingFlow builds a three-lane priority router: a switch fans out to
// high/medium/low processing nodes that reconverge on a merge node.
func (b *Builder) branchingFlow(cur *cursor) stage {
	conns := domain.ConnectionMap{}

	switchNode := domain.Node{
		Name: "Route by Priority",
		Type: domain.TypeSwitch,
		Parameters: map[string]any{
			"mode": "rules",
			"rules": map[string]any{
				"rules": []any{
					map[string]any{"value1": "={{$json.score}}", "operation": "largerEqual", "value2": 80, "output": 0},
					map[string]any{"value1": "={{$json.score}}", "operation": "largerEqual", "value2": 50, "output": 1},
				},
			},
			"fallbackOutput": 2,
		},
	}
	b.place(&switchNode, cur)

	lanes := []struct {
		name  string
		speed string
		dy    int
	}{
		{"High Priority Processing", "immediate", -stepY},
		{"Medium Priority Processing", "standard", 0},
		{"Low Priority Processing", "batched", stepY},
	}

	nodes := []domain.Node{switchNode}
	for port, lane := range lanes {
		n := domain.Node{
			ID:          b.newID(),
			Name:        lane.name,
			Type:        domain.TypeSet,
			TypeVersion: domain.DefaultTypeVersion,
			Position:    [2]int{cur.x, cur.y + lane.dy},
			Parameters: map[string]any{
				"values": map[string]any{
					"string": []any{
						map[string]any{"name": "priority_level", "value": lane.speed},
					},
				},
			},
		}
		nodes = append(nodes, n)
		conns.ConnectPort(switchNode.Name, n.Name, port)
	}
	cur.advance()

	mergeNode := domain.Node{
		Name:       "Merge Paths",
		Type:       domain.TypeMerge,
		Parameters: map[string]any{"mode": "append"},
	}
	b.place(&mergeNode, cur)
	for _, lane := range lanes {
		conns.Connect(lane.name, mergeNode.Name)
	}
	nodes = append(nodes, mergeNode)

	return stage{
		nodes: nodes,
		conns: conns,
		entry: switchNode.Name,
		exit:  mergeNode.Name,
	}
}

func (b *Builder) actionNode(req Requirements, cur *cursor) domain.Node {
	output := "email"
	if len(req.Outputs) > 0 {
		output = req.Outputs[0]
	}

	var n domain.Node
	switch output {
	case "email":
		n = domain.Node{
			Name: "Send Email",
			Type: domain.TypeGmail,
			Parameters: map[string]any{
				"resource":  "message",
				"operation": "send",
				"sendTo":    "={{$json.email}}",
				"subject":   "={{$json.subject || 'Workflow Notification'}}",
				"message":   "={{$json.body || $json.message}}",
			},
			Credentials: map[string]domain.Credential{
				"gmailOAuth2": {ID: "{{CREDENTIAL_ID}}", Name: "Gmail account"},
			},
		}
	case "slack":
		n = domain.Node{
			Name: "Post to Slack",
			Type: domain.TypeSlack,
			Parameters: map[string]any{
				"resource":  "message",
				"operation": "post",
				"channel":   "#general",
				"text":      "={{$json.message}}",
			},
			Credentials: map[string]domain.Credential{
				"slackApi": {ID: "{{CREDENTIAL_ID}}", Name: "Slack account"},
			},
		}
	case "database":
		dbType, dbKind := databaseType(req)
		n = domain.Node{
			Name: "Save to Database",
			Type: dbType,
			Parameters: map[string]any{
				"operation": "insert",
				"table":     "workflow_results",
			},
			Credentials: map[string]domain.Credential{
				dbKind: {ID: "{{CREDENTIAL_ID}}", Name: title(dbKind) + " database"},
			},
		}
	default:
		n = domain.Node{
			Name: "Send to Webhook",
			Type: domain.TypeHTTPRequest,
			Parameters: map[string]any{
				"method":  "POST",
				"url":     "={{$json.webhook_url}}",
				"options": map[string]any{},
			},
		}
	}
	b.place(&n, cur)
	return n
}

func (b *Builder) auditNode(req Requirements, cur *cursor) domain.Node {
	dbType, dbKind := databaseType(req)
	n := domain.Node{
		Name: "Log to Audit Trail",
		Type: dbType,
		Parameters: map[string]any{
			"operation":        "insert",
			"table":            "workflow_logs",
			"columns":          "workflow_id,execution_id,data,timestamp",
			"additionalFields": map[string]any{},
		},
		Credentials: map[string]domain.Credential{
			dbKind: {ID: "{{CREDENTIAL_ID}}", Name: title(dbKind) + " database"},
		},
	}
	b.place(&n, cur)
	return n
}

func (b *Builder) notificationNode(cur *cursor) domain.Node {
	n := domain.Node{
		Name: "Notify Completion",
		Type: domain.TypeSlack,
		Parameters: map[string]any{
			"resource":  "message",
			"operation": "post",
			"channel":   "#notifications",
			"text":      "Workflow completed for {{$json.name || $json.email}}",
		},
		Credentials: map[string]domain.Credential{
			"slackApi": {ID: "{{CREDENTIAL_ID}}", Name: "Slack account"},
		},
	}
	b.place(&n, cur)
	return n
}

// errorFlow builds the out-of-band error sub-graph one canvas row below
// the main path, rooted at a dedicated error entry node.
func (b *Builder) errorFlow(req Requirements) stage {
	conns := domain.ConnectionMap{}
	y := originY + errRowDY

	trigger := domain.Node{
		ID:          b.newID(),
		Name:        "Error Trigger",
		Type:        domain.TypeErrorTrigger,
		TypeVersion: domain.DefaultTypeVersion,
		Position:    [2]int{originX, y},
		Parameters:  map[string]any{},
	}

	logNode := domain.Node{
		ID:          b.newID(),
		Name:        "Log Error Details",
		Type:        domain.TypeFunction,
		TypeVersion: domain.DefaultTypeVersion,
		Position:    [2]int{originX + stepX, y},
		Parameters: map[string]any{
			"functionCode": `const error = $input.item.json;
return {
  workflow_id: $workflow.id,
  execution_id: $execution.id,
  node_name: error.node?.name,
  error_message: error.error?.message,
  timestamp: new Date().toISOString(),
};`,
		},
	}
	conns.Connect(trigger.Name, logNode.Name)

	nodes := []domain.Node{trigger, logNode}
	if req.NeedsErrorAlerts {
		alert := domain.Node{
			ID:          b.newID(),
			Name:        "Alert Admin",
			Type:        domain.TypeGmail,
			TypeVersion: domain.DefaultTypeVersion,
			Position:    [2]int{originX + 2*stepX, y},
			Parameters: map[string]any{
				"resource":  "message",
				"operation": "send",
				"sendTo":    "admin@example.com",
				"subject":   "Workflow Error Alert",
				"message":   "Error in workflow {{$json.workflow_id}}: {{$json.error_message}}",
			},
			Credentials: map[string]domain.Credential{
				"gmailOAuth2": {ID: "{{CREDENTIAL_ID}}", Name: "Gmail account"},
			},
		}
		conns.Connect(logNode.Name, alert.Name)
		nodes = append(nodes, alert)
	}

	return stage{nodes: nodes, conns: conns, entry: trigger.Name, exit: logNode.Name}
}

// place stamps identity, version, and the cursor position onto a node,
// then advances the cursor one column.
func (b *Builder) place(n *domain.Node, cur *cursor) {
	n.ID = b.newID()
	n.TypeVersion = domain.DefaultTypeVersion
	n.Position = [2]int{cur.x, cur.y}
	cur.advance()
}

func databaseType(req Requirements) (typeTag, credentialKind string) {
	if req.Database == "mysql" {
		return domain.TypeMySQL, "mySql"
	}
	return domain.TypePostgres, "postgres"
}
