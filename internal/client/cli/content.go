package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

func (a *App) Posts(ctx context.Context, args []string) error {
	page, err := pageArg(args)
	if err != nil {
		return err
	}
	res, err := a.api.Posts.ListPosts(ctx, page, pageSize)
	if err != nil {
		return err
	}
	if len(res.Posts) == 0 {
		a.println("No posts on page", page)
		return nil
	}

	tw := a.table()
	fmt.Fprintln(tw, "ID\tEVENT\tAUTHOR\tLIKES\tDESCRIPTION")
	for _, p := range res.Posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.EventID, p.UserID, p.Likes, shorten(p.Description, 40))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printPagination(res.Pagination)
	return nil
}

// Reports lists reported posts waiting for a moderator.
func (a *App) Reports(ctx context.Context, args []string) error {
	page, err := pageArg(args)
	if err != nil {
		return err
	}
	res, err := a.api.Posts.ReportedPosts(ctx, page, pageSize)
	if err != nil {
		return err
	}
	if len(res.Reports) == 0 {
		a.println("No reports")
		return nil
	}

	tw := a.table()
	fmt.Fprintln(tw, "POST\tREPORTER\tSTATUS\tREASON\tDESCRIPTION")
	for _, r := range res.Reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Post.ID, r.Reporter.UserName, r.Status, r.Reason, shorten(r.Post.Description, 30))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printPagination(res.Pagination)
	return nil
}

// Act resolves the reports on a post: "remove" deletes the post, "warn"
// keeps it and warns the author.
func (a *App) Act(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: act <postId> <%s|%s>", models.ReportRemove, models.ReportWarn)
	}
	action := models.ReportAction(strings.ToLower(args[1]))
	if action != models.ReportRemove && action != models.ReportWarn {
		return fmt.Errorf("unknown action %q, use %s or %s", args[1], models.ReportRemove, models.ReportWarn)
	}
	reason, err := GetSimpleText(a.reader, "Reason", a.out)
	if err != nil {
		return err
	}
	if err := a.api.Posts.ActOnReport(ctx, args[0], action, reason); err != nil {
		return err
	}
	a.println("Report resolved:", action)
	return nil
}

// Transactions lists wallet transactions. Filters are given as name=value
// pairs: type, from, to, search, page, limit.
func (a *App) Transactions(ctx context.Context, args []string) error {
	kv, err := parseKV(args)
	if err != nil {
		return err
	}
	f := models.TransactionFilter{Limit: pageSize}
	for k, v := range kv {
		switch k {
		case "type":
			f.Type = models.TransactionType(strings.ToLower(v))
		case "from":
			f.StartDate = v
		case "to":
			f.EndDate = v
		case "search":
			f.Search = v
		case "page", "limit":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return fmt.Errorf("%s must be a positive number, got %q", k, v)
			}
			if k == "page" {
				f.Page = n
			} else {
				f.Limit = n
			}
		default:
			return fmt.Errorf("unknown filter %q", k)
		}
	}

	txs, err := a.api.Transactions.ListTransactions(ctx, f)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		a.println("No transactions")
		return nil
	}

	var total float64
	tw := a.table()
	fmt.Fprintln(tw, "TIME\tID\tUSER\tTITLE\tAMOUNT")
	for _, t := range txs {
		user := t.UserID
		if t.User != nil {
			user = t.User.UserName
		}
		total += t.SignedAmount()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%+.2f\n", t.Time.Local().Format("2006-01-02 15:04"), t.TransactionID, user, t.Title, t.SignedAmount())
	}
	fmt.Fprintf(tw, "\t\t\tNET\t%+.2f\n", total)
	return tw.Flush()
}

func (a *App) printPagination(p models.Pagination) {
	if p.TotalPages == 0 {
		return
	}
	line := fmt.Sprintf("Page %d of %d (%d total)", p.Page, p.TotalPages, p.Total)
	if p.HasNextPage {
		line += ", more with the next page number"
	}
	a.println(line)
}

func shorten(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
