package tools

import (
	"context"
	"fmt"

	"github.com/harborcrew/quarterdeck/internal/journal"
)

// MeetingLogPayload is the read_meeting_log result.
type MeetingLogPayload struct {
	LogContent string `json:"log_content"`
}

// ProfilePayload is the read_team_profile result.
type ProfilePayload struct {
	ProfileContent string `json:"profile_content"`
}

// PartnershipPayload is the read_partnership_documents result.
type PartnershipPayload struct {
	DocumentContent string `json:"document_content"`
}

func (s Service) registerJournalTools(reg *Registry) {
	reg.MustRegister(Tool{
		Name:        "read_meeting_log",
		Description: "Reads the meeting log for a specific date (YYYY-MM-DD).",
		Handler: func(_ context.Context, args Args) (any, error) {
			date, err := args.requiredString("meeting_date")
			if err != nil {
				return nil, err
			}
			content, err := s.Journal.ReadMeetingLog(date)
			if err != nil {
				return nil, err
			}
			return MeetingLogPayload{LogContent: content}, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "write_meeting_log",
		Description: "Creates or overwrites the meeting log for a specific date.",
		Handler: func(_ context.Context, args Args) (any, error) {
			date, err := args.requiredString("meeting_date")
			if err != nil {
				return nil, err
			}
			participants, err := args.stringSlice("participants")
			if err != nil {
				return nil, err
			}
			content, err := args.requiredString("content")
			if err != nil {
				return nil, err
			}
			if err := s.Journal.WriteMeetingLog(date, participants, content); err != nil {
				return nil, err
			}
			return WritePayload{Message: fmt.Sprintf("Meeting log for %s saved.", date)}, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "read_team_profile",
		Description: "Reads the profile of a crew member.",
		Handler: func(_ context.Context, args Args) (any, error) {
			member, err := args.requiredString("member_name")
			if err != nil {
				return nil, err
			}
			content, err := s.Journal.ReadTeamProfile(member)
			if err != nil {
				return nil, err
			}
			return ProfilePayload{ProfileContent: content}, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "write_team_profile",
		Description: "Overwrites the profile of a crew member.",
		Handler: func(_ context.Context, args Args) (any, error) {
			member, err := args.requiredString("member_name")
			if err != nil {
				return nil, err
			}
			content, err := args.requiredString("content")
			if err != nil {
				return nil, err
			}
			if err := s.Journal.WriteTeamProfile(member, content); err != nil {
				return nil, err
			}
			return WritePayload{Message: fmt.Sprintf("Profile for %s saved.", member)}, nil
		},
	})

	reg.MustRegister(Tool{
		Name:        "read_partnership_documents",
		Description: "Reads the partnership agreement or its companion document.",
		Handler: func(_ context.Context, args Args) (any, error) {
			docType, err := args.requiredString("document_type")
			if err != nil {
				return nil, err
			}
			content, err := s.Journal.ReadPartnershipDocument(journal.PartnershipDoc(docType))
			if err != nil {
				return nil, err
			}
			return PartnershipPayload{DocumentContent: content}, nil
		},
	})
}
