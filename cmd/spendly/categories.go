package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"spendly/internal/models"
)

var categorySubcommands = []string{"list", "add", "rename", "move", "delete"}

func (a *app) categoriesCmd(ctx context.Context, args []string) error {
	if err := a.load(ctx); err != nil {
		return err
	}
	if len(args) == 0 {
		return a.listCategories()
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return a.listCategories()
	case "add":
		return a.addCategory(ctx, rest)
	case "rename":
		return a.renameCategory(ctx, rest)
	case "move":
		return a.moveCategory(ctx, rest)
	case "delete":
		return a.deleteCategory(ctx, rest)
	}
	return unknown("categories subcommand", sub, categorySubcommands)
}

func (a *app) listCategories() error {
	cats := a.categories.List()
	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories yet.")
		return nil
	}
	t := newGrid(a.out, "ID", "NAME", "PARENT")
	for _, c := range cats {
		t.row(strconv.FormatUint(uint64(c.ID), 10), c.Name, c.DisplayParent())
	}
	return t.flush()
}

func (a *app) addCategory(ctx context.Context, args []string) error {
	fs := newFlagSet("categories add")
	parentRef := fs.String("parent", "", "parent category id or name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name := strings.Join(fs.Args(), " ")

	var parent *uint
	if *parentRef != "" {
		id, err := a.resolveCategory(*parentRef)
		if err != nil {
			return err
		}
		parent = &id
	}

	created, err := a.categories.Create(ctx, name, parent)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created category %d (%s).\n", created.ID, a.categories.Path(created.ID))
	return nil
}

func (a *app) renameCategory(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: spendly categories rename REF NAME")
	}
	id, err := a.resolveCategory(args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")
	if _, err := a.categories.Update(ctx, id, models.CategoryPatch{Name: &name}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Renamed category %d to %s.\n", id, name)
	return nil
}

func (a *app) moveCategory(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: spendly categories move REF PARENT|-")
	}
	id, err := a.resolveCategory(args[0])
	if err != nil {
		return err
	}

	patch := models.CategoryPatch{Parent: models.Clear()}
	if args[1] != "-" {
		parent, err := a.resolveCategory(args[1])
		if err != nil {
			return err
		}
		patch.Parent = models.SetID(parent)
	}
	if _, err := a.categories.Update(ctx, id, patch); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Moved category to %s.\n", a.categories.Path(id))
	return nil
}

func (a *app) deleteCategory(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: spendly categories delete REF")
	}
	id, err := a.resolveCategory(args[0])
	if err != nil {
		return err
	}
	if err := a.categories.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted category %d.\n", id)
	return nil
}

// resolveCategory accepts a category id or name. Names are matched exactly
// first, then case-insensitively.
func (a *app) resolveCategory(ref string) (uint, error) {
	if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
		return uint(id), nil
	}

	cats := a.categories.List()
	for _, match := range []func(string) bool{
		func(name string) bool { return name == ref },
		func(name string) bool { return strings.EqualFold(name, ref) },
	} {
		var found []models.Category
		for _, c := range cats {
			if match(c.Name) {
				found = append(found, c)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0].ID, nil
		default:
			return 0, fmt.Errorf("category name %q is ambiguous; use one of the ids %s", ref, idList(found))
		}
	}

	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return 0, unknown("category", ref, names)
}

func idList(cats []models.Category) string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = strconv.FormatUint(uint64(c.ID), 10)
	}
	return strings.Join(ids, ", ")
}
