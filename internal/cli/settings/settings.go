// Package settings holds the commands that edit reminders, the notification
// sound and the remembrance guide.
package settings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/cli"
	rerrors "github.com/julianstephens/rihla/internal/errors"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/notifier"
	store "github.com/julianstephens/rihla/internal/settings"
)

type SettingsCmd struct {
	List     SettingsListCmd `cmd:"" default:"1" help:"List current settings."`
	Reminder ReminderCmd     `cmd:"" help:"Change or preview a reminder."`
	Sound    SoundCmd        `cmd:"" help:"Choose the notification sound."`
	Select   SelectCmd       `cmd:"" help:"Show or hide an item in the daily guide."`
	Move     MoveCmd         `cmd:"" help:"Move an item up or down within its category."`
	Add      AddCmd          `cmd:"" help:"Add a custom remembrance item."`
	Delete   DeleteCmd       `cmd:"" help:"Delete a custom remembrance item."`
}

type SettingsListCmd struct{}

func (c *SettingsListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	s := st.Settings()

	fmt.Println("Reminders:")
	for _, r := range s.Reminders {
		state := "off"
		if r.Enabled {
			state = "on"
		}
		fmt.Printf("  %-16s %-16s %s  %s\n", r.ID, r.Label, r.Time, state)
	}

	fmt.Println("\nNotification sound:")
	for _, snd := range catalog.Sounds {
		marker := " "
		if snd.ID == s.NotificationSound {
			marker = "▸"
		}
		fmt.Printf("  %s %-8s %s (%s)\n", marker, snd.ID, snd.Label, snd.Description)
	}

	fmt.Println("\nRemembrance guide:")
	for _, cat := range catalog.Categories {
		fmt.Printf("  %s [%s]\n", cat.Title, cat.ID)
		for _, it := range st.OrderedItems(cat.ID) {
			tag := ""
			if st.IsCustom(it.ID) {
				tag = " (custom)"
			}
			fmt.Printf("    %s %s %s%s\n", cli.Check(st.IsSelected(it.ID)), it.ID, truncate(it.Text, 60), tag)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type ReminderCmd struct {
	Set     ReminderSetCmd     `cmd:"" default:"withargs" help:"Change a reminder's time or state."`
	Preview ReminderPreviewCmd `cmd:"" help:"Send the reminder once to the tray companion."`
}

type ReminderSetCmd struct {
	ID      string  `arg:"" help:"Reminder id (see 'rihla settings list')."`
	Time    *string `help:"Time of day, HH:MM."`
	Enabled *bool   `help:"Enable or disable the reminder." negatable:""`
}

func (c *ReminderSetCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	if _, ok := st.Reminder(c.ID); !ok {
		return fmt.Errorf("unknown reminder %q", c.ID)
	}
	if c.Time != nil && !store.ValidTime(*c.Time) {
		return fmt.Errorf("invalid time %q, expected HH:MM", *c.Time)
	}
	if c.Time == nil && c.Enabled == nil {
		fmt.Println("No changes specified. Use --time or --enabled/--no-enabled.")
		return nil
	}
	if err := st.SetReminder(c.ID, models.ReminderUpdate{Time: c.Time, Enabled: c.Enabled}); err != nil {
		return err
	}
	r, _ := st.Reminder(c.ID)
	fmt.Printf("Reminder %s set to %s (enabled: %v)\n", r.ID, r.Time, r.Enabled)
	return nil
}

type ReminderPreviewCmd struct {
	ID string `arg:"" help:"Reminder id."`
}

func (c *ReminderPreviewCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	r, ok := st.Reminder(c.ID)
	if !ok {
		return fmt.Errorf("unknown reminder %q", c.ID)
	}

	var n cli.Previewer = ctx.Notifier
	if n == nil {
		n = notifier.New()
	}
	sound := st.Settings().NotificationSound
	if err := n.Preview(context.Background(), r, sound); err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			return rerrors.WithHint(err, "start the rihla tray companion to receive previews")
		}
		return fmt.Errorf("failed to send preview: %w", err)
	}
	fmt.Printf("Sent preview: %s (sound: %s)\n", notifier.PreviewText(r), sound)
	return nil
}

type SoundCmd struct {
	ID string `arg:"" help:"Sound: gentle, nature or digital."`
}

func (c *SoundCmd) Run(ctx *cli.Context) error {
	id := strings.ToLower(c.ID)
	if !catalog.IsSound(id) {
		var ids []string
		for _, s := range catalog.Sounds {
			ids = append(ids, s.ID)
		}
		return fmt.Errorf("unknown sound %q (one of: %s)", c.ID, strings.Join(ids, ", "))
	}
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	if err := st.SetNotificationSound(id); err != nil {
		return err
	}
	fmt.Printf("Notification sound set to %s\n", id)
	return nil
}

type SelectCmd struct {
	ID string `arg:"" help:"Item id."`
}

func (c *SelectCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	if _, ok := st.Item(c.ID); !ok {
		return fmt.Errorf("unknown item %q", c.ID)
	}
	if err := st.ToggleSelected(c.ID); err != nil {
		return err
	}
	if st.IsSelected(c.ID) {
		fmt.Printf("%s is shown in the daily guide\n", c.ID)
	} else {
		fmt.Printf("%s is hidden from the daily guide\n", c.ID)
	}
	return nil
}

type MoveCmd struct {
	ID        string `arg:"" help:"Item id."`
	Direction string `arg:"" enum:"up,down" help:"up or down."`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	dir, ok := store.ParseDirection(c.Direction)
	if !ok {
		return fmt.Errorf("invalid direction %q, expected up or down", c.Direction)
	}
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	item, ok := st.Item(c.ID)
	if !ok {
		return fmt.Errorf("unknown item %q", c.ID)
	}
	before := st.Settings().Order
	if err := st.MoveItem(c.ID, dir); err != nil {
		return err
	}
	if slices.Equal(before, st.Settings().Order) {
		fmt.Printf("%s is already at the %s of %s\n", c.ID, map[store.Direction]string{store.Up: "top", store.Down: "bottom"}[dir], item.Category)
		return nil
	}
	fmt.Printf("Moved %s %s\n", c.ID, strings.ToLower(c.Direction))
	return nil
}

type AddCmd struct {
	Category string `arg:"" help:"Category: morning, evening, afterPrayer or beforeSleep."`
	Text     string `arg:"" help:"The remembrance text."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	category := models.Category(c.Category)
	if !catalog.IsCategory(category) {
		return fmt.Errorf("unknown category %q", c.Category)
	}
	id, err := st.AddCustomItem(category, c.Text)
	if err != nil {
		return err
	}
	if id == "" {
		return errors.New("item text must not be empty")
	}
	fmt.Printf("Added %s to %s\n", id, category)
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Custom item id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !st.IsCustom(c.ID) {
		return fmt.Errorf("%q is not a custom item; catalog items can only be hidden with 'rihla settings select'", c.ID)
	}
	if err := st.DeleteCustomItem(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", c.ID)
	return nil
}
