// Package cli implements the non-interactive subcommands: listing,
// deleting and opening worksheets from the shell.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/codalab/lazyworksheets/internal/api"
	"github.com/codalab/lazyworksheets/internal/app/services"
	"github.com/codalab/lazyworksheets/internal/config"
	"github.com/codalab/lazyworksheets/internal/log"
	"github.com/codalab/lazyworksheets/internal/models"
)

// ErrAborted is returned when the user declines a confirmation.
var ErrAborted = errors.New("aborted")

// ListOptions narrows and formats the list output.
type ListOptions struct {
	Filter   string
	MineOnly bool
	JSON     bool
	Pristine bool
}

// worksheetJSON is the JSON output format for a worksheet.
type worksheetJSON struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	OwnerID    string `json:"owner_id"`
	OwnerName  string `json:"owner_name,omitempty"`
	Permission string `json:"permission"`
	URL        string `json:"url"`
}

// List prints the worksheets visible under opts. "Mine only" is ignored for
// identities that cannot use it.
func List(ctx context.Context, svc api.Service, cfg *config.AppConfig, identity models.Identity, opts ListOptions, out io.Writer) error {
	if opts.JSON && opts.Pristine {
		return fmt.Errorf("--pristine and --json are mutually exclusive")
	}
	if opts.MineOnly && !identity.CanFilterMine() {
		log.Printf("cli: --mine needs an authenticated user id, ignoring")
		opts.MineOnly = false
	}

	reqCtx, cancel := api.WithTimeout(ctx, cfg.Timeout())
	defer cancel()
	worksheets, err := svc.ListWorksheets(reqCtx)
	if err != nil {
		return fmt.Errorf("failed to list worksheets: %w", err)
	}
	visible := services.FilterWorksheets(worksheets, opts.Filter, opts.MineOnly, identity.UserID)

	switch {
	case opts.JSON:
		return outputListJSON(out, cfg, visible)
	case opts.Pristine:
		for _, ws := range visible {
			fmt.Fprintln(out, ws.UUID)
		}
		return nil
	}
	outputListTable(out, visible, len(worksheets))
	return nil
}

func outputListJSON(out io.Writer, cfg *config.AppConfig, worksheets []models.Worksheet) error {
	rows := make([]worksheetJSON, 0, len(worksheets))
	for _, ws := range worksheets {
		rows = append(rows, worksheetJSON{
			UUID:       ws.UUID,
			Name:       ws.Name,
			OwnerID:    ws.OwnerID.String(),
			OwnerName:  ws.OwnerName,
			Permission: ws.Permission.String(),
			URL:        cfg.DetailURL(ws.UUID),
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func outputListTable(out io.Writer, worksheets []models.Worksheet, total int) {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	if len(worksheets) == 0 {
		fmt.Fprintln(out, faint("No worksheets matched your criteria"))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("NAME"), bold("OWNER"), bold("ACCESS"), bold("UUID"))
	for _, ws := range worksheets {
		access := ws.Permission.String()
		if ws.ReadOnly() {
			access = warn(access)
		}
		owner := ws.OwnerName
		if owner == "" {
			owner = ws.OwnerID.String()
		}
		tbl.AddRow(ws.Name, owner, access, faint(ws.UUID))
	}
	fmt.Fprintln(out, tbl)
	fmt.Fprintln(out, faint(fmt.Sprintf("%d of %d worksheets", len(worksheets), total)))
}

// Resolve finds the worksheet named by ref, matching the UUID first, then
// an exact name, then a unique UUID prefix.
func Resolve(worksheets []models.Worksheet, ref string) (models.Worksheet, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Worksheet{}, fmt.Errorf("worksheet reference is empty")
	}
	for _, ws := range worksheets {
		if ws.UUID == ref {
			return ws, nil
		}
	}

	var prefixed, named []models.Worksheet
	for _, ws := range worksheets {
		if strings.HasPrefix(ws.UUID, ref) {
			prefixed = append(prefixed, ws)
		}
		if ws.Name == ref {
			named = append(named, ws)
		}
	}
	for _, matches := range [][]models.Worksheet{named, prefixed} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return models.Worksheet{}, fmt.Errorf("%q is ambiguous: matches %d worksheets", ref, len(matches))
		}
	}
	return models.Worksheet{}, fmt.Errorf("worksheet %q not found", ref)
}

// Confirmer asks a yes/no question.
type Confirmer func(prompt string) (bool, error)

// Delete removes the worksheets named by refs. Every reference is resolved
// before anything is deleted; a nil confirm deletes without asking.
func Delete(ctx context.Context, svc api.Service, cfg *config.AppConfig, refs []string, confirm Confirmer, out io.Writer) error {
	if len(refs) == 0 {
		return fmt.Errorf("usage: lazyworksheets delete <uuid|name>...")
	}

	listCtx, cancel := api.WithTimeout(ctx, cfg.Timeout())
	worksheets, err := svc.ListWorksheets(listCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to list worksheets: %w", err)
	}

	targets := make([]models.Worksheet, 0, len(refs))
	for _, ref := range refs {
		ws, err := Resolve(worksheets, ref)
		if err != nil {
			return err
		}
		targets = append(targets, ws)
	}

	var errs []error
	for _, ws := range targets {
		if confirm != nil {
			ok, err := confirm(fmt.Sprintf("Permanently delete worksheet %q (%s)?", ws.Name, ws.UUID))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "Skipped %s\n", ws.UUID)
				continue
			}
		}

		reqCtx, cancel := api.WithTimeout(ctx, cfg.Timeout())
		err := svc.DeleteWorksheet(reqCtx, ws.UUID)
		cancel()
		if err != nil {
			log.Errorf("cli: delete %s: %v", ws.UUID, err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(out, "Deleted %s (%s)\n", ws.Name, ws.UUID)
	}
	return errors.Join(errs...)
}

// Open resolves ref and hands its detail URL to open. An empty ref asks
// the user to pick a worksheet with selectFn.
func Open(ctx context.Context, svc api.Service, cfg *config.AppConfig, ref string, selectFn WorksheetSelector, open func(url string) error, out io.Writer) error {
	reqCtx, cancel := api.WithTimeout(ctx, cfg.Timeout())
	worksheets, err := svc.ListWorksheets(reqCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to list worksheets: %w", err)
	}

	var ws models.Worksheet
	if ref == "" {
		if selectFn == nil {
			return fmt.Errorf("usage: lazyworksheets open <uuid|name>")
		}
		if len(worksheets) == 0 {
			return fmt.Errorf("no worksheets found")
		}
		picked, err := selectFn(worksheets)
		if err != nil {
			return err
		}
		ws = *picked
	} else if ws, err = Resolve(worksheets, ref); err != nil {
		return err
	}

	url := cfg.DetailURL(ws.UUID)
	fmt.Fprintln(out, url)
	if open == nil {
		return nil
	}
	return open(url)
}
