// Command tripctl is a small client for the trip API.
//
//	tripctl create -name "Pirineo" -family "García" -members 4
//	tripctl open -trip a1b2c3d4 -key XXXXXXXXXXXX
//	tripctl add-expense -trip a1b2c3d4 -token T -payer FAMILY -concept Cena -amount 42,50
//	tripctl settle -trip a1b2c3d4 -token T -method BY_FAMILY
//	tripctl toggle -trip a1b2c3d4 -token T -settlement FROM-TO-50.00
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"connectrpc.com/connect"

	"github.com/david-rodelgo/gastoscompartidos/pkg/api"
	"github.com/david-rodelgo/gastoscompartidos/pkg/api/apiconnect"
)

const usage = `usage: tripctl <command> [flags]

commands:
  create       create a trip and print its access key and token
  open         exchange an access key for a session token
  add-expense  record an expense
  settle       print balances and transfers
  toggle       mark a transfer as paid or unpaid
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tripctl:", err)
		os.Exit(1)
	}
}

// common holds the flags every command accepts.
type common struct {
	server string
	trip   string
	token  string
	key    string
}

func (c *common) register(fs *flag.FlagSet) {
	server := os.Getenv("TRIPCTL_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}
	fs.StringVar(&c.server, "server", server, "API base URL")
	fs.StringVar(&c.trip, "trip", "", "trip ID")
	fs.StringVar(&c.token, "token", os.Getenv("TRIPCTL_TOKEN"), "session token")
	fs.StringVar(&c.key, "key", "", "trip access key")
}

func (c *common) client() apiconnect.TripServiceClient {
	return apiconnect.NewTripServiceClient(http.DefaultClient, c.server)
}

// authorize attaches the token, or the access key when no token was given.
func authorize[T any](c *common, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	switch {
	case c.token != "":
		req.Header().Set("Authorization", "Bearer "+c.token)
	case c.key != "":
		req.Header().Set("X-Trip-Key", c.key)
	}
	return req
}

func run(ctx context.Context, cmd string, args []string, out io.Writer) error {
	var c common
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	c.register(fs)

	switch cmd {
	case "create":
		name := fs.String("name", "", "trip name")
		family := fs.String("family", "", "your family name")
		members := fs.Int("members", 1, "members in your family")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := c.client().CreateTrip(ctx, connect.NewRequest(&api.CreateTripRequest{
			Name:        *name,
			FamilyName:  *family,
			MemberCount: int32(*members),
		}))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "trip:      %s\nkey:       %s\nfamily:    %s\ntoken:     %s\n",
			resp.Msg.Trip.Id, resp.Msg.AccessKey, resp.Msg.FamilyId, resp.Msg.Token)
		return nil

	case "open":
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := c.client().OpenTrip(ctx, connect.NewRequest(&api.OpenTripRequest{
			TripId:    c.trip,
			AccessKey: c.key,
		}))
		if err != nil {
			return err
		}
		printTrip(out, resp.Msg.Trip)
		fmt.Fprintf(out, "token: %s\n", resp.Msg.Token)
		return nil

	case "add-expense":
		payer := fs.String("payer", "", "paying family ID")
		concept := fs.String("concept", "", "what was paid")
		amount := fs.String("amount", "", "amount, e.g. 42.50 or 42,50")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := c.client().AddExpense(ctx, authorize(&c, &api.AddExpenseRequest{
			TripId:   c.trip,
			Concept:  *concept,
			Amount:   *amount,
			FamilyId: *payer,
		}))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "expense %s added (version %d)\n", resp.Msg.ExpenseId, resp.Msg.Trip.Version)
		return nil

	case "settle":
		method := fs.String("method", "BY_MEMBER", "BY_MEMBER or BY_FAMILY")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := c.client().GetSettlement(ctx, authorize(&c, &api.GetSettlementRequest{
			TripId: c.trip,
			Method: *method,
		}))
		if err != nil {
			return err
		}
		printSettlement(out, resp.Msg)
		return nil

	case "toggle":
		settlementKey := fs.String("settlement", "", "settlement key as printed by settle")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := c.client().ToggleSettlement(ctx, authorize(&c, &api.ToggleSettlementRequest{
			TripId: c.trip,
			Key:    *settlementKey,
		}))
		if err != nil {
			return err
		}
		state := "pending"
		if resp.Msg.Settled {
			state = "paid"
		}
		fmt.Fprintf(out, "%s: %s\n", *settlementKey, state)
		return nil

	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func printTrip(out io.Writer, trip *api.Trip) {
	fmt.Fprintf(out, "%s (%s) version %d\n", trip.Name, trip.Id, trip.Version)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tID\tMEMBERS\tROLE")
	for _, f := range trip.Families {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.Name, f.Id, f.MemberCount, f.Role)
	}
	w.Flush()
}

func printSettlement(out io.Writer, s *api.GetSettlementResponse) {
	fmt.Fprintf(out, "method %s, spent %.2f, %d members\n\n", s.Method, s.TotalSpent, s.TotalMembers)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tPAID\tSHARE\tBALANCE")
	for _, b := range s.Balances {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%+.2f\n", b.Name, b.Paid, b.Share, b.Balance)
	}
	w.Flush()

	if len(s.Transfers) == 0 {
		fmt.Fprintln(out, "\nnothing to settle")
	} else {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FROM\tTO\tAMOUNT\tPAID\tKEY")
		for _, t := range s.Transfers {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%t\t%s\n", t.FromName, t.ToName, t.Amount, t.Settled, t.Key)
		}
		w.Flush()
	}

	for _, k := range s.OrphanedKeys {
		fmt.Fprintf(out, "orphaned confirmation: %s\n", k)
	}
}
