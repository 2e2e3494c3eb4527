package tools

import (
	"context"
	"fmt"

	"github.com/harborcrew/quarterdeck/internal/codex"
)

// CodeContentPayload is the read_pirate_code result.
type CodeContentPayload struct {
	Content string `json:"content"`
}

// WritePayload is the generic write/edit confirmation result.
type WritePayload struct {
	Message string `json:"message"`
}

func (s Service) registerCodeTools(reg *Registry) {
	reg.MustRegister(Tool{
		Name:        "read_pirate_code",
		Description: "Reads the full content of the pirate code charter.",
		Handler: func(_ context.Context, _ Args) (any, error) {
			content, err := s.Code.Read()
			if err != nil {
				return nil, err
			}
			return CodeContentPayload{Content: content}, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "write_pirate_code",
		Description: "Appends a new article to the pirate code charter.",
		Handler: func(_ context.Context, args Args) (any, error) {
			title, err := args.requiredString("article_title")
			if err != nil {
				return nil, err
			}
			text, err := args.requiredString("article_text")
			if err != nil {
				return nil, err
			}
			if err := s.Code.AppendSection(title, text); err != nil {
				return nil, err
			}
			return WritePayload{Message: fmt.Sprintf("Added %q to the pirate code.", title)}, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "edit_pirate_code",
		Description: "Modifies or deletes an existing article in the pirate code charter.",
		Handler: func(_ context.Context, args Args) (any, error) {
			title, err := args.requiredString("target_article_title")
			if err != nil {
				return nil, err
			}
			action, err := args.requiredString("action")
			if err != nil {
				return nil, err
			}
			newText, _, err := args.optionalString("new_article_text")
			if err != nil {
				return nil, err
			}
			if err := s.Code.EditSection(title, codex.Action(action), newText); err != nil {
				return nil, err
			}
			verb := "Modified"
			if codex.Action(action) == codex.ActionDelete {
				verb = "Deleted"
			}
			return WritePayload{Message: fmt.Sprintf("%s article %q.", verb, codex.NormalizeTitle(title))}, nil
		},
	})
}
