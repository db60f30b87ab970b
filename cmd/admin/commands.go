package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"pettag/internal/config"
	"pettag/internal/domain"
	"pettag/internal/service"
)

var errUsage = errors.New("usage")

type app struct {
	users     service.UserService
	pets      service.PetService
	subs      service.SubscriptionService
	tickets   service.TicketService
	analytics service.AnalyticsService
	reminders service.ReminderService
	exports   service.ExportService
	limits    config.AdminConfig
	out       io.Writer
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) (interface{}, error)
}

var commands = map[string]command{
	"dashboard": {"dashboard", func(ctx context.Context, a *app, _ []string) (interface{}, error) {
		return a.analytics.Dashboard(ctx)
	}},
	"scans": {"scans [days]", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		days, err := optInt(args, 0, "days", a.limits.ScanWindowDays)
		if err != nil {
			return nil, err
		}
		return a.analytics.ScanAnalytics(ctx, days)
	}},
	"revenue": {"revenue", func(ctx context.Context, a *app, _ []string) (interface{}, error) {
		return a.analytics.RevenueAnalytics(ctx)
	}},
	"expiring": {"expiring [days]", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		days, err := optInt(args, 0, "days", a.limits.ExpiryDaysAhead)
		if err != nil {
			return nil, err
		}
		return a.subs.Expiring(ctx, days)
	}},
	"users": {"users [limit] [offset]", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		limit, offset, err := page(args)
		if err != nil {
			return nil, err
		}
		return a.users.List(ctx, limit, offset)
	}},
	"users-all": {"users-all", func(ctx context.Context, a *app, _ []string) (interface{}, error) {
		return a.users.ListWithSubscriptions(ctx)
	}},
	"search": {"search <query>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		return a.users.Search(ctx, strings.Join(args, " "))
	}},
	"user": {"user <id>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "user_id")
		if err != nil {
			return nil, err
		}
		return a.users.GetDetails(ctx, id)
	}},
	"activate": {"activate <user-id>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "user_id")
		if err != nil {
			return nil, err
		}
		return a.users.Activate(ctx, id)
	}},
	"deactivate": {"deactivate <user-id>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "user_id")
		if err != nil {
			return nil, err
		}
		return a.users.Deactivate(ctx, id)
	}},
	"pets": {"pets [limit] [offset]", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		limit, offset, err := page(args)
		if err != nil {
			return nil, err
		}
		return a.pets.ListWithOwners(ctx, limit, offset)
	}},
	"pet": {"pet <id>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "pet_id")
		if err != nil {
			return nil, err
		}
		return a.pets.Get(ctx, id)
	}},
	"pet-update": {"pet-update <id> <json>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "pet_id")
		if err != nil {
			return nil, err
		}
		var input service.UpdatePetInput
		if err := decodeStrict(args, 1, &input); err != nil {
			return nil, err
		}
		return a.pets.Update(ctx, id, input)
	}},
	"subscriptions": {"subscriptions", func(ctx context.Context, a *app, _ []string) (interface{}, error) {
		return a.subs.List(ctx)
	}},
	"subscription": {"subscription <id>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "subscription_id")
		if err != nil {
			return nil, err
		}
		return a.subs.Get(ctx, id)
	}},
	"subscribe": {"subscribe <user-id> <annual|monthly> <amount> <start YYYY-MM-DD> <end YYYY-MM-DD>",
		func(ctx context.Context, a *app, args []string) (interface{}, error) {
			if len(args) < 5 {
				return nil, fmt.Errorf("%w: subscribe needs 5 arguments", errUsage)
			}
			userID, err := reqID(args, 0, "user_id")
			if err != nil {
				return nil, err
			}
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return nil, domain.NewValidation("amount", "must be a number")
			}
			start, err := parseDate(args[3], "start_date")
			if err != nil {
				return nil, err
			}
			end, err := parseDate(args[4], "end_date")
			if err != nil {
				return nil, err
			}
			return a.subs.Create(ctx, userID, service.CreateSubscriptionInput{
				PlanType:  domain.PlanType(args[1]),
				Amount:    amount,
				StartDate: start,
				EndDate:   end,
			})
		}},
	"subscription-status": {"subscription-status <id> <status>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "subscription_id")
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: status is required", errUsage)
		}
		return a.subs.UpdateStatus(ctx, id, domain.SubscriptionStatus(args[1]))
	}},
	"subscription-update": {"subscription-update <id> <json>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "subscription_id")
		if err != nil {
			return nil, err
		}
		var input service.UpdateSubscriptionInput
		if err := decodeStrict(args, 1, &input); err != nil {
			return nil, err
		}
		return a.subs.Update(ctx, id, input)
	}},
	"tickets": {"tickets [limit] [offset]", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		limit, offset, err := page(args)
		if err != nil {
			return nil, err
		}
		return a.tickets.List(ctx, limit, offset)
	}},
	"ticket": {"ticket <id>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "ticket_id")
		if err != nil {
			return nil, err
		}
		return a.tickets.Get(ctx, id)
	}},
	"ticket-open": {"ticket-open <json>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		var input service.CreateTicketInput
		if err := decodeStrict(args, 0, &input); err != nil {
			return nil, err
		}
		return a.tickets.Create(ctx, input)
	}},
	"ticket-update": {"ticket-update <id> <json>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "ticket_id")
		if err != nil {
			return nil, err
		}
		var input service.UpdateTicketInput
		if err := decodeStrict(args, 1, &input); err != nil {
			return nil, err
		}
		return a.tickets.Update(ctx, id, input)
	}},
	"resolve": {"resolve <ticket-id>", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		id, err := reqID(args, 0, "ticket_id")
		if err != nil {
			return nil, err
		}
		status := domain.TicketStatusResolved
		return a.tickets.Update(ctx, id, service.UpdateTicketInput{Status: &status})
	}},
	"remind": {"remind [days]", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		days, err := optInt(args, 0, "days", a.limits.ExpiryDaysAhead)
		if err != nil {
			return nil, err
		}
		return a.reminders.SendExpiryReminders(ctx, days)
	}},
	"export": {"export <revenue|expiring> <csv|xlsx> [days]", func(ctx context.Context, a *app, args []string) (interface{}, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: export needs a report and a format", errUsage)
		}
		switch args[0] {
		case "revenue":
			return a.exports.ExportRevenue(ctx, args[1])
		case "expiring":
			days, err := optInt(args, 2, "days", a.limits.ExpiryDaysAhead)
			if err != nil {
				return nil, err
			}
			return a.exports.ExportExpiring(ctx, days, args[1])
		default:
			return nil, fmt.Errorf("%w: unknown report %q", errUsage, args[0])
		}
	}},
}

// dispatch runs one command and writes its result as indented JSON.
func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", errUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	result, err := cmd.run(ctx, a, args[1:])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Usage: admin <command> [args]")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func optInt(args []string, i int, field string, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, domain.NewValidation(field, "must be an integer")
	}
	return n, nil
}

// page reads optional limit and offset. A missing limit becomes zero, which
// the services treat as the default page size.
func page(args []string) (int, int, error) {
	limit, err := optInt(args, 0, "limit", 0)
	if err != nil {
		return 0, 0, err
	}
	offset, err := optInt(args, 1, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func reqID(args []string, i int, field string) (int64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("%w: %s is required", errUsage, field)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0, domain.NewValidation(field, "must be an integer")
	}
	return id, nil
}

func parseDate(s, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.NewValidation(field, "must be YYYY-MM-DD")
	}
	return t, nil
}

// decodeStrict decodes a JSON argument, rejecting fields the input type lacks.
func decodeStrict(args []string, i int, v interface{}) error {
	if len(args) <= i {
		return fmt.Errorf("%w: JSON argument is required", errUsage)
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(args[i])))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidation("input", err.Error())
	}
	return nil
}
