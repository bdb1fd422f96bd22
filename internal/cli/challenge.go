package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/challenge-radar/internal/ics"
	"github.com/julianstephens/challenge-radar/internal/models"
	"github.com/julianstephens/challenge-radar/internal/progress"
	"github.com/julianstephens/challenge-radar/internal/utils"
)

type AddCmd struct {
	Title        string `help:"Challenge title." short:"t"`
	Description  string `help:"Optional description." short:"d"`
	Start        string `help:"Start date (YYYY-MM-DD, default today)."`
	Days         int    `help:"Streak length target." default:"30"`
	ReminderTime string `help:"Daily reminder time (HH:MM)." default:"09:00"`
	NoReminders  bool   `help:"Create with reminders switched off."`
}

func (c *AddCmd) Run(ctx *Context) error {
	defer ctx.Coord.Flush()

	challenge := models.Challenge{
		Title:        c.Title,
		Description:  c.Description,
		StartDate:    c.Start,
		TotalDays:    c.Days,
		ReminderTime: c.ReminderTime,
		RemindersOn:  !c.NoReminders,
	}

	// No title on the command line means the interactive form.
	if c.Title == "" {
		if err := runAddForm(&challenge); err != nil {
			return err
		}
	}

	added, err := ctx.Coord.Add(context.Background(), challenge)
	if err != nil {
		return err
	}

	fmt.Printf("Challenge added. You got this!\n")
	fmt.Println(FormatChallengeLine(added, time.Now()))
	return nil
}

// runAddForm collects challenge fields interactively, offering the
// starter templates first.
func runAddForm(challenge *models.Challenge) error {
	templateOptions := []huh.Option[int]{huh.NewOption("Start from scratch", -1)}
	for i, tpl := range models.Templates {
		templateOptions = append(templateOptions, huh.NewOption(tpl.Label, i))
	}

	chosen := -1
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Template").
			Options(templateOptions...).
			Value(&chosen),
	)).Run(); err != nil {
		return err
	}
	if chosen >= 0 {
		tpl := models.Templates[chosen]
		challenge.Title = tpl.Title
		challenge.Description = tpl.Description
		challenge.TotalDays = tpl.TotalDays
		challenge.ReminderTime = tpl.ReminderTime
	}

	days := strconv.Itoa(challenge.TotalDays)
	if challenge.StartDate == "" {
		challenge.StartDate = utils.TodayKey()
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&challenge.Title).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("name your challenge first")
				}
				return nil
			}),
		huh.NewInput().
			Title("Description").
			Value(&challenge.Description),
		huh.NewInput().
			Title("Start date (YYYY-MM-DD)").
			Value(&challenge.StartDate).
			Validate(func(s string) error {
				if !utils.ValidateDayFormat(s) {
					return fmt.Errorf("expected YYYY-MM-DD")
				}
				return nil
			}),
		huh.NewInput().
			Title("Total days").
			Value(&days),
		huh.NewInput().
			Title("Reminder time (HH:MM)").
			Value(&challenge.ReminderTime).
			Validate(func(s string) error {
				if !utils.ValidateClockFormat(s) {
					return fmt.Errorf("expected HH:MM")
				}
				return nil
			}),
		huh.NewConfirm().
			Title("Daily reminders?").
			Value(&challenge.RemindersOn),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if n, err := strconv.Atoi(days); err == nil {
		challenge.TotalDays = n
	}
	return nil
}

type ListCmd struct {
	Filter string `help:"View filter: today, active, completed, upcoming, all." default:"all" short:"f"`
}

func (c *ListCmd) Run(ctx *Context) error {
	filter, err := ParseFilter(c.Filter)
	if err != nil {
		return err
	}

	now := time.Now()
	sorted := progress.Sorted(ctx.Coord.Challenges(), now)
	visible := progress.Filtered(sorted, filter, now)

	if len(visible) == 0 {
		fmt.Println("Nothing in this view. Try another filter or create a new challenge.")
		return nil
	}

	counts := progress.Counts(sorted, now)
	fmt.Println(mutedStyle.Render(fmt.Sprintf(
		"today %d  active %d  completed %d  upcoming %d  all %d",
		counts.Today, counts.Active, counts.Completed, counts.Upcoming, counts.All)))
	for _, challenge := range visible {
		fmt.Println(FormatChallengeLine(challenge, now))
	}
	return nil
}

type CheckCmd struct {
	Challenge string `arg:"" help:"Challenge id or title."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	defer ctx.Coord.Flush()

	challenge, err := ctx.FindChallenge(c.Challenge)
	if err != nil {
		return err
	}

	checked, err := ctx.Coord.ToggleToday(context.Background(), challenge.ID)
	if err != nil {
		return err
	}

	if checked {
		fmt.Printf("Checked in: %s\n", challenge.Title)
	} else {
		fmt.Printf("Unchecked today for: %s\n", challenge.Title)
	}

	updated, _ := ctx.Coord.Find(challenge.ID)
	fmt.Println(FormatChallengeLine(updated, time.Now()))
	return nil
}

type EditCmd struct {
	Challenge    string `arg:"" help:"Challenge id or title."`
	Title        string `help:"New title."`
	Description  string `help:"New description."`
	Start        string `help:"New start date (YYYY-MM-DD)."`
	Days         int    `help:"New streak length."`
	ReminderTime string `help:"New reminder time (HH:MM)."`
	Reminders    string `help:"Turn reminders on or off." enum:",on,off" default:""`
}

func (c *EditCmd) Run(ctx *Context) error {
	defer ctx.Coord.Flush()

	challenge, err := ctx.FindChallenge(c.Challenge)
	if err != nil {
		return err
	}

	updated, err := ctx.Coord.Update(context.Background(), challenge.ID, func(target *models.Challenge) {
		if c.Title != "" {
			target.Title = c.Title
		}
		if c.Description != "" {
			target.Description = c.Description
		}
		if c.Start != "" {
			target.StartDate = c.Start
		}
		if c.Days != 0 {
			target.TotalDays = c.Days
		}
		if c.ReminderTime != "" {
			target.ReminderTime = c.ReminderTime
		}
		switch c.Reminders {
		case "on":
			target.RemindersOn = true
		case "off":
			target.RemindersOn = false
		}
	})
	if err != nil {
		return err
	}

	fmt.Println(FormatChallengeLine(updated, time.Now()))
	return nil
}

type RemoveCmd struct {
	Challenge string `arg:"" help:"Challenge id or title."`
}

func (c *RemoveCmd) Run(ctx *Context) error {
	defer ctx.Coord.Flush()

	challenge, err := ctx.FindChallenge(c.Challenge)
	if err != nil {
		return err
	}

	if err := ctx.Coord.Remove(context.Background(), challenge.ID); err != nil {
		return err
	}

	fmt.Printf("Removed challenge: %s\n", challenge.Title)
	return nil
}

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	now := time.Now()
	today := utils.DayKey(now)
	focus := progress.TodayFocus(ctx.Coord.Challenges(), now)

	if len(focus) == 0 {
		fmt.Println("Nothing to check off today. Upcoming challenges will land here automatically.")
		return nil
	}

	for _, challenge := range focus {
		p := progress.Compute(challenge, now)
		day, err := utils.DaysBetween(challenge.StartDate, now)
		if err != nil {
			day = 0
		}
		dayNum := day + 1
		if dayNum > challenge.TotalDays {
			dayNum = challenge.TotalDays
		}

		marker := " "
		if challenge.Entries[today] {
			marker = "x"
		}
		fmt.Printf("[%s] %s  %s\n", marker,
			titleStyle.Render(challenge.Title),
			mutedStyle.Render(fmt.Sprintf("day %d of %d, %d%% complete, reminder at %s",
				dayNum, challenge.TotalDays, p.Percent, challenge.ReminderTime)))
	}
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	stats := progress.BuildStats(ctx.Coord.Challenges(), time.Now())
	fmt.Printf("Challenges: %d\n", stats.Total)
	fmt.Printf("Active:     %d\n", stats.Active)
	fmt.Printf("Completed:  %d (%d%%)\n", stats.Completed, stats.CompletionRate)
	fmt.Printf("Check-ins:  %d\n", stats.CheckIns)
	return nil
}

type ExportCmd struct {
	Challenge string `arg:"" help:"Challenge id or title."`
	Out       string `help:"Output directory." default:"." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	challenge, err := ctx.FindChallenge(c.Challenge)
	if err != nil {
		return err
	}

	path := filepath.Join(c.Out, ics.Filename(challenge))
	if err := os.WriteFile(path, []byte(ics.Build(challenge, time.Now())), 0644); err != nil {
		return fmt.Errorf("failed to write calendar file: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
