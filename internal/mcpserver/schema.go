package mcpserver

// schemaFor returns the JSON schema advertised for a tool's arguments.
// Tools not in the table advertise an open object so plugin-added tools
// still work over the wire.
func schemaFor(name string) map[string]any {
	if schema, ok := toolSchemas[name]; ok {
		return schema
	}
	return objectSchema(nil)
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{"type": "object"}
	if len(properties) > 0 {
		schema["properties"] = properties
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

var toolSchemas = map[string]map[string]any{
	"read_task_list": objectSchema(map[string]any{
		"user_name": stringProp("Crew member whose task list to read."),
	}, "user_name"),
	"write_task": objectSchema(map[string]any{
		"user_name":   stringProp("Crew member who owns the task list."),
		"task_title":  stringProp("Short title for the task."),
		"assignee":    stringProp("Crew member responsible for the task."),
		"deadline":    stringProp("Deadline, free-form text."),
		"description": stringProp("One-line task description."),
	}, "user_name", "task_title", "assignee", "deadline", "description"),
	"edit_task": objectSchema(map[string]any{
		"user_name": stringProp("Crew member who owns the task list."),
		"task_id":   map[string]any{"type": "integer", "description": "ID of the task to edit."},
		"action":    map[string]any{"type": "string", "enum": []string{"modify", "delete"}},
		"updates": map[string]any{
			"type":        "object",
			"description": "Field updates for modify; null values leave a field unchanged.",
		},
	}, "user_name", "task_id", "action"),
	"read_pirate_code": objectSchema(nil),
	"write_pirate_code": objectSchema(map[string]any{
		"article_title": stringProp("Title of the new article."),
		"article_text":  stringProp("Body text of the new article."),
	}, "article_title", "article_text"),
	"edit_pirate_code": objectSchema(map[string]any{
		"target_article_title": stringProp("Title of the article to edit."),
		"action":               map[string]any{"type": "string", "enum": []string{"modify", "delete"}},
		"new_article_text":     stringProp("Replacement body for modify."),
	}, "target_article_title", "action"),
	"read_meeting_log": objectSchema(map[string]any{
		"meeting_date": stringProp("Meeting date, YYYY-MM-DD."),
	}, "meeting_date"),
	"write_meeting_log": objectSchema(map[string]any{
		"meeting_date": stringProp("Meeting date, YYYY-MM-DD."),
		"participants": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"content":      stringProp("Notes recorded during the meeting."),
	}, "meeting_date", "participants", "content"),
	"read_team_profile": objectSchema(map[string]any{
		"member_name": stringProp("Crew member whose profile to read."),
	}, "member_name"),
	"write_team_profile": objectSchema(map[string]any{
		"member_name": stringProp("Crew member whose profile to write."),
		"content":     stringProp("Full profile content."),
	}, "member_name", "content"),
	"read_partnership_documents": objectSchema(map[string]any{
		"document_type": map[string]any{"type": "string", "enum": []string{"agreement", "companion"}},
	}, "document_type"),
	"get_current_time": objectSchema(map[string]any{
		"time_zone": stringProp("IANA time zone name, e.g. Europe/Berlin."),
	}, "time_zone"),
	"request_user_clarification": objectSchema(map[string]any{
		"question":     stringProp("Question to put to the user."),
		"context_info": map[string]any{"type": "object", "description": "Optional context shown with the question."},
	}, "question"),
	"present_for_review": objectSchema(map[string]any{
		"item_type":       stringProp("What kind of item is being reviewed."),
		"item_content":    map[string]any{"type": "object", "description": "The item under review."},
		"proposed_action": stringProp("What the caller intends to do with the item."),
	}, "item_type", "proposed_action"),
}
