package monitoring

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/hazemadel/staffdeck-be/internal/ledger"
	"github.com/hazemadel/staffdeck-be/internal/services"
	"github.com/hazemadel/staffdeck-be/internal/websocket"
)

// PaydayReminder periodically checks for servers with outstanding balances
// and surfaces them on the activity feed and the dashboard, driven by a
// cron expression (typically the agency's payday).
type PaydayReminder struct {
	serverSvc   services.ServerServiceProvider
	activitySvc services.ActivityServiceProvider
	hub         *websocket.Hub
	schedule    cron.Schedule
	nextRun     time.Time
	ticker      *time.Ticker
	done        chan bool
}

// NewPaydayReminder creates a reminder for the given cron spec.
func NewPaydayReminder(serverSvc services.ServerServiceProvider, activitySvc services.ActivityServiceProvider, hub *websocket.Hub, cronSpec string) (*PaydayReminder, error) {
	schedule, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid payday cron expression %q: %w", cronSpec, err)
	}

	return &PaydayReminder{
		serverSvc:   serverSvc,
		activitySvc: activitySvc,
		hub:         hub,
		schedule:    schedule,
		nextRun:     schedule.Next(time.Now()),
		done:        make(chan bool),
	}, nil
}

// Run starts the reminder's ticking loop.
func (p *PaydayReminder) Run() {
	log.Info().Time("next_run", p.nextRun).Msg("Starting payday reminder")
	p.ticker = time.NewTicker(1 * time.Minute)
	defer p.ticker.Stop()

	for {
		select {
		case <-p.done:
			log.Info().Msg("Stopping payday reminder")
			return
		case <-p.ticker.C:
			now := time.Now()
			if now.After(p.nextRun) {
				p.remind()
				p.nextRun = p.schedule.Next(now)
			}
		}
	}
}

// Stop halts the reminder loop.
func (p *PaydayReminder) Stop() {
	p.done <- true
}

// remind records one activity entry summarizing who is still owed money and
// pushes the list to dashboard clients.
func (p *PaydayReminder) remind() {
	servers, err := p.serverSvc.GetServersWithOutstandingBalance()
	if err != nil {
		log.Error().Err(err).Msg("Payday reminder: failed to query outstanding balances")
		return
	}
	if len(servers) == 0 {
		log.Info().Msg("Payday reminder: no outstanding balances")
		return
	}

	var total float64
	for _, srv := range servers {
		total += srv.TotalEarnings
	}

	msg := fmt.Sprintf("Payday: %d servers are owed %s in total.", len(servers), ledger.FormatCurrency(total))
	if err := p.activitySvc.Record("payroll.reminder", "warn", msg, nil); err != nil {
		log.Error().Err(err).Msg("Payday reminder: failed to record activity")
	}

	if p.hub != nil {
		payload, err := json.Marshal(websocket.Message{Action: "payday_reminder", Payload: servers})
		if err == nil {
			p.hub.Broadcast <- payload
		}
	}
	log.Info().Int("servers", len(servers)).Str("total", ledger.FormatCurrency(total)).Msg("Payday reminder sent")
}
