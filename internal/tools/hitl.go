package tools

import (
	"context"
	"fmt"
)

// HITLToolNames lists the tools that only register when a Prompter is
// attached. Surfaces that intentionally run without one, like the MCP
// stdio server, still route contexts that name them.
var HITLToolNames = []string{"request_user_clarification", "present_for_review"}

// ClarificationPayload is the request_user_clarification result.
type ClarificationPayload struct {
	UserResponse string `json:"user_response"`
}

// ReviewPayload is the present_for_review result.
type ReviewPayload struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments,omitempty"`
}

func (s Service) registerHITLTools(reg *Registry) {
	reg.MustRegister(Tool{
		Name:        "request_user_clarification",
		Description: "Pauses and asks the user a specific question, returning their response.",
		Handler: func(ctx context.Context, args Args) (any, error) {
			question, err := args.requiredString("question")
			if err != nil {
				return nil, err
			}
			var contextInfo map[string]any
			if raw, ok := args["context_info"]; ok && raw != nil {
				info, isMap := raw.(map[string]any)
				if !isMap {
					return nil, fmt.Errorf("%w: context_info must be an object", ErrValidation)
				}
				contextInfo = info
			}
			response, err := s.Prompter.Clarify(ctx, question, contextInfo)
			if err != nil {
				return nil, fmt.Errorf("tools: clarification failed: %w", err)
			}
			return ClarificationPayload{UserResponse: response}, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "present_for_review",
		Description: "Presents an item for user review and approval before proceeding.",
		Handler: func(ctx context.Context, args Args) (any, error) {
			itemType, err := args.requiredString("item_type")
			if err != nil {
				return nil, err
			}
			proposedAction, err := args.requiredString("proposed_action")
			if err != nil {
				return nil, err
			}
			var item map[string]any
			if raw, ok := args["item_content"]; ok && raw != nil {
				content, isMap := raw.(map[string]any)
				if !isMap {
					return nil, fmt.Errorf("%w: item_content must be an object", ErrValidation)
				}
				item = content
			}
			decision, err := s.Prompter.Review(ctx, itemType, item, proposedAction)
			if err != nil {
				return nil, fmt.Errorf("tools: review failed: %w", err)
			}
			return ReviewPayload{Approved: decision.Approved, Comments: decision.Comments}, nil
		},
	})
}
