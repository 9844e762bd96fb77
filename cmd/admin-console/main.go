// cmd/admin-console/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"marketplace-admin/internal/api"
	"marketplace-admin/internal/auth"
	"marketplace-admin/internal/common/config"
	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/common/observability"
	"marketplace-admin/internal/models"
	businessmanagement "marketplace-admin/internal/pages/business-management"
	"marketplace-admin/internal/pages/dashboard"
	"marketplace-admin/internal/pages/offers"
	pendingapprovals "marketplace-admin/internal/pages/pending-approvals"
	"marketplace-admin/internal/pages/promotions"
	"marketplace-admin/internal/pages/subscriptions"
	usermanagement "marketplace-admin/internal/pages/user-management"
	"marketplace-admin/internal/shell"
)

type console struct {
	client        *api.Client
	session       *auth.Session
	shell         *shell.Shell
	dash          *dashboard.Page
	businesses    *businessmanagement.Page
	pending       *pendingapprovals.Page
	subscriptions *subscriptions.Page
	users         *usermanagement.Page
	promotions    *promotions.Page
	offers        *offers.Page
	out           *tabwriter.Writer
	lines         <-chan string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	store, err := newTokenStore(cfg, log)
	if err != nil {
		zapLogger.Fatal("token store init failed", zap.Error(err))
	}
	defer store.Close()

	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Millisecond, store, log, obs)
	session := auth.NewSession(store, client, log)

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				log.Warn("metrics server stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	c := &console{
		client:        client,
		session:       session,
		shell:         shell.New(session, log),
		dash:          dashboard.New(client, log),
		businesses:    businessmanagement.New(client, log),
		pending:       pendingapprovals.New(client, log),
		users:         usermanagement.New(client, log),
		promotions:    promotions.New(client, log),
		offers:        offers.New(client, log),
		out:           tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0),
		lines:         readStdin(),
	}
	c.subscriptions = subscriptions.New(client, func(float64) {}, log)

	// A signal cancels the context; run returns and the deferred
	// teardown above executes.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c.run(ctx)
}

func newTokenStore(cfg *config.Config, log logger.Logger) (auth.TokenStore, error) {
	if cfg.Auth.Storage == "redis" {
		return auth.NewRedisStore(cfg.Redis, log)
	}
	return auth.NewFileStore(cfg.Auth.TokenPath, log)
}

// readStdin feeds stdin lines to a channel so the command loop can
// select between operator input and shutdown.
func readStdin() <-chan string {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()
	return lines
}

// readLine returns the next stdin line, or ok=false on shutdown or EOF.
func (c *console) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-c.lines:
		return line, ok
	}
}

func (c *console) prompt(ctx context.Context, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := c.readLine(ctx)
	return strings.TrimSpace(line)
}

// promptDefault shows the current value and keeps it on empty input.
func (c *console) promptDefault(ctx context.Context, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	line, ok := c.readLine(ctx)
	if !ok {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func (c *console) confirm(ctx context.Context, question string) bool {
	fmt.Printf("%s (yes/no): ", question)
	line, ok := c.readLine(ctx)
	return ok && strings.TrimSpace(line) == "yes"
}

func (c *console) run(ctx context.Context) {
	fmt.Println("marketplace admin console. type 'help' for commands")

	for {
		fmt.Printf("[%s]> ", c.shell.Route())
		line, ok := c.readLine(ctx)
		if !ok {
			fmt.Println("\nshutting down")
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			c.printHelp()
		case "login":
			c.login(ctx)
		case "logout":
			if err := c.session.Logout(ctx); err != nil {
				fmt.Println("error:", err)
			}
		case "dashboard":
			c.showDashboard(ctx)
		case "businesses":
			c.showBusinesses(ctx, args)
		case "edit-business":
			c.editBusiness(ctx, args)
		case "pending":
			c.showPending(ctx)
		case "approve":
			c.approve(ctx, args)
		case "delete-business":
			c.deleteBusiness(ctx, args)
		case "subscriptions":
			c.showSubscriptions(ctx, args)
		case "payment":
			c.showPayment(ctx, args)
		case "delete-payment":
			c.deletePayment(ctx, args)
		case "users":
			c.showUsers(ctx, args)
		case "promotions":
			c.showPromotions(ctx)
		case "add-promotion":
			c.addPromotion(ctx)
		case "delete-promotion":
			c.deletePromotion(ctx, args)
		case "offers":
			c.showOffers(ctx)
		case "delete-offer":
			c.deleteOffer(ctx, args)
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func (c *console) printHelp() {
	fmt.Println(`commands:
  login                     authenticate with phone + OTP
  logout                    clear the stored token
  dashboard                 counts and successful-payments total
  businesses [search]       list business partners
  edit-business <id>        edit a partner's profile fields
  pending                   list partners awaiting approval
  approve <id>              approve a pending partner
  delete-business <id>      delete a partner (asks for confirmation)
  subscriptions [tab]       list payments (All/Successful/Unsuccessful)
  payment <id>              show one payment record
  delete-payment <id>       delete a payment record
  users [search]            list platform users
  promotions                list promotions in display order
  add-promotion             create a promotion
  delete-promotion <id>     delete a promotion
  offers                    list sponsored offers
  delete-offer <id>         delete an offer
  quit`)
}

func (c *console) gate(ctx context.Context, route string) bool {
	if !c.shell.Navigate(ctx, route) {
		fmt.Println("please login first")
		return false
	}
	return true
}

func (c *console) login(ctx context.Context) {
	phone := c.promptDefault(ctx, "phone", c.session.LastPhone(ctx))
	otp := c.prompt(ctx, "otp")

	if err := c.session.Login(ctx, phone, otp); err != nil {
		fmt.Println("login failed:", err)
		return
	}
	c.shell.Navigate(ctx, shell.RouteDashboard)
	fmt.Println("logged in")
}

func (c *console) showDashboard(ctx context.Context) {
	if !c.gate(ctx, shell.RouteDashboard) {
		return
	}
	if err := c.dash.Refresh(ctx); err != nil {
		fmt.Println("error:", c.dash.Error())
		return
	}
	fmt.Printf("users: %d\nbusiness partners: %d\nsuccessful payments total: %.2f\n",
		c.dash.UserCount(), c.dash.PartnerCount(), c.dash.Total())
}

func (c *console) showBusinesses(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RouteBusinessManagement) {
		return
	}
	if err := c.businesses.Refresh(ctx); err != nil {
		fmt.Println("error:", c.businesses.Error())
		return
	}
	c.businesses.SetSearch(strings.Join(args, " "))
	fmt.Fprintln(c.out, "ID\tNAME\tPROPRIETOR\tSERVICE\tSTATUS")
	visible := c.businesses.Visible()
	for _, b := range visible {
		status := businessmanagement.StatusPending
		if b.IsApproved {
			status = businessmanagement.StatusApproved
		}
		fmt.Fprintf(c.out, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.BusinessName, b.ProprietorName, b.ServiceProvided, status)
	}
	c.out.Flush()
	fmt.Printf("%d of %d partners shown\n", len(visible), c.businesses.Len())
}

func (c *console) editBusiness(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RouteBusinessManagement) {
		return
	}
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: edit-business <id>")
		return
	}
	if err := c.businesses.Refresh(ctx); err != nil {
		fmt.Println("error:", c.businesses.Error())
		return
	}
	editor, ok := c.businesses.Edit(id)
	if !ok {
		fmt.Println("no such partner")
		return
	}

	fmt.Println("press enter to keep the current value")
	draft := editor.Draft()
	draft.BusinessName = c.promptDefault(ctx, "business name", draft.BusinessName)
	draft.ProprietorName = c.promptDefault(ctx, "proprietor", draft.ProprietorName)
	draft.PhoneNumber = c.promptDefault(ctx, "phone", draft.PhoneNumber)
	draft.Email = c.promptDefault(ctx, "email", draft.Email)
	draft.ServiceProvided = c.promptDefault(ctx, "service", draft.ServiceProvided)
	draft.Location = c.promptDefault(ctx, "location", draft.Location)

	if !c.confirm(ctx, "save changes?") {
		editor.Cancel()
		fmt.Println("cancelled")
		return
	}
	if err := c.businesses.CommitEdit(ctx, editor); err != nil {
		fmt.Println("save failed:", err)
		return
	}
	fmt.Println("saved")
}

func (c *console) showPending(ctx context.Context) {
	if !c.gate(ctx, shell.RoutePendingApprovals) {
		return
	}
	if err := c.pending.Refresh(ctx); err != nil {
		fmt.Println("error:", c.pending.Error())
		return
	}
	fmt.Fprintln(c.out, "ID\tNAME\tPHONE")
	for _, b := range c.pending.Visible() {
		fmt.Fprintf(c.out, "%d\t%s\t%s\n", b.ID, b.BusinessName, b.PhoneNumber)
	}
	c.out.Flush()
}

func (c *console) approve(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RoutePendingApprovals) {
		return
	}
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: approve <id>")
		return
	}
	if err := c.pending.Refresh(ctx); err != nil {
		fmt.Println("error:", c.pending.Error())
		return
	}

	var details models.MoreDetails
	for {
		name := c.prompt(ctx, "detail name (empty to finish)")
		if name == "" {
			break
		}
		value := c.prompt(ctx, "detail value")
		details = append(details, models.DetailEntry{Name: name, Detail: value})
	}

	if err := c.pending.Approve(ctx, id, details); err != nil {
		fmt.Println("approve failed:", err)
		return
	}
	fmt.Println("approved")
}

func (c *console) deleteBusiness(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RouteBusinessManagement) {
		return
	}
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: delete-business <id>")
		return
	}
	if err := c.businesses.Refresh(ctx); err != nil {
		fmt.Println("error:", c.businesses.Error())
		return
	}
	partner, found := c.businesses.Find(id)
	if !found {
		fmt.Println("no such partner")
		return
	}

	fmt.Printf("delete %q? type the business name to confirm: ", partner.BusinessName)
	confirmed := false
	if line, ok := c.readLine(ctx); ok {
		confirmed = strings.TrimSpace(line) == partner.BusinessName
	}
	if err := c.businesses.Delete(ctx, id, confirmed); err != nil {
		fmt.Println("delete failed:", err)
		return
	}
	fmt.Println("deleted")
}

func (c *console) showSubscriptions(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RouteSubscriptions) {
		return
	}
	if err := c.subscriptions.Refresh(ctx); err != nil {
		fmt.Println("error:", c.subscriptions.Error())
		return
	}
	if len(args) > 0 {
		c.subscriptions.SetTab(args[0])
	}
	fmt.Fprintln(c.out, "ID\tUSER\tPLAN\tAMOUNT\tSTATUS")
	for _, p := range c.subscriptions.Visible() {
		fmt.Fprintf(c.out, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.User.Name, p.PlanLabel(), p.FormatAmount(), p.Status)
	}
	c.out.Flush()
	fmt.Printf("tab: %s, total (successful): %.2f\n", c.subscriptions.Tab(), c.subscriptions.Total())
}

func (c *console) showPayment(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RouteSubscriptions) {
		return
	}
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: payment <id>")
		return
	}
	p, err := c.client.GetPayment(ctx, id)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("id: %d\nuser: %s (%s)\nplan: %s\namount: %s\nstatus: %s\ncreated: %s\n",
		p.ID, p.User.Name, p.User.PhoneNumber, p.PlanLabel(), p.FormatAmount(), p.Status,
		p.CreatedAt.Format("2006-01-02"))
}

func (c *console) deletePayment(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RouteSubscriptions) {
		return
	}
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: delete-payment <id>")
		return
	}
	if err := c.subscriptions.Refresh(ctx); err != nil {
		fmt.Println("error:", c.subscriptions.Error())
		return
	}
	confirmed := c.confirm(ctx, fmt.Sprintf("delete payment %d?", id))
	if err := c.subscriptions.Delete(ctx, id, confirmed); err != nil {
		fmt.Println("delete failed:", err)
		return
	}
	fmt.Println("deleted")
}

func (c *console) showUsers(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RouteUserManagement) {
		return
	}
	if err := c.users.Refresh(ctx); err != nil {
		fmt.Println("error:", c.users.Error())
		return
	}
	c.users.SetSearch(strings.Join(args, " "))
	fmt.Fprintln(c.out, "ID\tNAME\tPHONE")
	for _, u := range c.users.Visible() {
		fmt.Fprintf(c.out, "%d\t%s\t%s\n", u.ID, u.Name, u.PhoneNumber)
	}
	c.out.Flush()
}

func (c *console) showPromotions(ctx context.Context) {
	if !c.gate(ctx, shell.RoutePromotions) {
		return
	}
	if err := c.promotions.Refresh(ctx); err != nil {
		fmt.Println("error:", c.promotions.Error())
		return
	}
	fmt.Fprintln(c.out, "ID\tBUSINESS\tPOSITION\tTITLE")
	for _, p := range c.promotions.DisplayOrder() {
		fmt.Fprintf(c.out, "%d\t%d\t%s\t%s\n", p.ID, p.BusinessID, p.Position, p.Title)
	}
	c.out.Flush()
}

func (c *console) addPromotion(ctx context.Context) {
	if !c.gate(ctx, shell.RoutePromotions) {
		return
	}
	if err := c.promotions.Refresh(ctx); err != nil {
		fmt.Println("error:", c.promotions.Error())
		return
	}

	businessID, err := strconv.ParseInt(c.prompt(ctx, "business id"), 10, 64)
	if err != nil {
		fmt.Println("business id must be a number")
		return
	}
	promo := models.Promotion{
		BusinessID:  businessID,
		Position:    models.Position(c.prompt(ctx, "position")),
		Title:       c.prompt(ctx, "title"),
		Description: c.prompt(ctx, "description"),
	}
	if err := c.promotions.Add(ctx, promo); err != nil {
		fmt.Println("add failed:", err)
		return
	}
	fmt.Println("added")
}

func (c *console) deletePromotion(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RoutePromotions) {
		return
	}
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: delete-promotion <id>")
		return
	}
	if err := c.promotions.Refresh(ctx); err != nil {
		fmt.Println("error:", c.promotions.Error())
		return
	}
	confirmed := c.confirm(ctx, fmt.Sprintf("delete promotion %d?", id))
	if err := c.promotions.Delete(ctx, id, confirmed); err != nil {
		fmt.Println("delete failed:", err)
		return
	}
	fmt.Println("deleted")
}

func (c *console) showOffers(ctx context.Context) {
	if !c.gate(ctx, shell.RouteOffers) {
		return
	}
	if err := c.offers.Refresh(ctx); err != nil {
		fmt.Println("error:", c.offers.Error())
		return
	}
	fmt.Fprintln(c.out, "ID\tPOSITION\tREDIRECT\tMEDIA")
	for _, o := range c.offers.Visible() {
		media := "image"
		if o.ImageURL == "" {
			media = "video"
		}
		fmt.Fprintf(c.out, "%d\t%s\t%s\t%s\n", o.ID, o.Position, o.RedirectionURL, media)
	}
	c.out.Flush()
}

func (c *console) deleteOffer(ctx context.Context, args []string) {
	if !c.gate(ctx, shell.RouteOffers) {
		return
	}
	id, ok := parseID(args)
	if !ok {
		fmt.Println("usage: delete-offer <id>")
		return
	}
	if err := c.offers.Refresh(ctx); err != nil {
		fmt.Println("error:", c.offers.Error())
		return
	}
	confirmed := c.confirm(ctx, fmt.Sprintf("delete offer %d?", id))
	if err := c.offers.Delete(ctx, id, confirmed); err != nil {
		fmt.Println("delete failed:", err)
		return
	}
	fmt.Println("deleted")
}

func parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
