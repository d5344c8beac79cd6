package progress

import (
	"fmt"
	"strings"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/ledger"
	"github.com/julianstephens/rihla/internal/models"
)

type AdhkarCmd struct {
	Category AdhkarCategoryCmd `cmd:"" help:"Toggle a whole remembrance category."`
	Item     AdhkarItemCmd     `cmd:"" help:"Toggle a single remembrance item."`
	List     AdhkarListCmd     `cmd:"" default:"withargs" help:"Show today's remembrance guide."`
}

func parseCategory(id string) (models.Category, error) {
	for _, c := range catalog.Categories {
		if strings.EqualFold(string(c.ID), id) {
			return c.ID, nil
		}
	}
	var ids []string
	for _, c := range catalog.Categories {
		ids = append(ids, string(c.ID))
	}
	return "", fmt.Errorf("unknown category %q (one of: %s)", id, strings.Join(ids, ", "))
}

type AdhkarCategoryCmd struct {
	ID string `arg:"" help:"Category: morning, evening, afterPrayer or beforeSleep."`
}

func (c *AdhkarCategoryCmd) Run(ctx *cli.Context) error {
	id, err := parseCategory(c.ID)
	if err != nil {
		return err
	}
	return apply(ctx, "Category toggled", func(svc *ledger.Service) error {
		return svc.SetRemembranceCategory(id)
	})
}

type AdhkarItemCmd struct {
	ID string `arg:"" help:"Item id as shown by 'rihla adhkar list'."`
}

func (c *AdhkarItemCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	if _, ok := st.Item(c.ID); !ok {
		return fmt.Errorf("unknown item %q", c.ID)
	}
	return apply(ctx, "Item toggled", func(svc *ledger.Service) error {
		return svc.SetIndividualRemembranceItem(c.ID)
	})
}

type AdhkarListCmd struct {
	Category string `arg:"" optional:"" help:"Only show this category."`
}

func (c *AdhkarListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Settings()
	if err != nil {
		return err
	}
	svc, err := ctx.Ledger()
	if err != nil {
		return err
	}
	l := svc.Ledger()

	var only models.Category
	if c.Category != "" {
		if only, err = parseCategory(c.Category); err != nil {
			return err
		}
	}

	for _, cat := range catalog.Categories {
		if only != "" && cat.ID != only {
			continue
		}
		fmt.Printf("%s %s (%s) [%s]\n", cli.Check(l.Categories[cat.ID]), cat.Title, cat.TimeHint, cat.ID)
		items := st.SelectedItems(cat.ID)
		if len(items) == 0 {
			fmt.Println("    (no items selected)")
		}
		for _, it := range items {
			reps := ""
			if it.Repetitions > 1 {
				reps = fmt.Sprintf(" x%d", it.Repetitions)
			}
			fmt.Printf("    %s %-8s %s%s\n", cli.Check(l.CompletedItems[it.ID]), it.ID, it.Text, reps)
		}
		fmt.Println()
	}
	return nil
}
