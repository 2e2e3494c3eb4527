package tools

import (
	"context"
	"fmt"
	"time"
)

// timeDisplayLayout renders like "09:30 AM on August 30, 2026".
const timeDisplayLayout = "03:04 PM on January 02, 2006"

// TimePayload is the get_current_time result.
type TimePayload struct {
	TimeZone string `json:"time_zone"`
	DateTime string `json:"date_time"`
	IsDST    bool   `json:"is_daylight_savings_time"`
}

func (s Service) registerTimeTool(reg *Registry) {
	reg.MustRegister(Tool{
		Name:        "get_current_time",
		Description: "Gets the current time in a specified IANA time zone.",
		Handler: func(_ context.Context, args Args) (any, error) {
			zone, err := args.requiredString("time_zone")
			if err != nil {
				return nil, err
			}
			loc, err := time.LoadLocation(zone)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid or unknown time zone %q", ErrValidation, zone)
			}
			now := s.clock().In(loc)
			return TimePayload{
				TimeZone: zone,
				DateTime: now.Format(timeDisplayLayout),
				IsDST:    now.IsDST(),
			}, nil
		},
	})
}
