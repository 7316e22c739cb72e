package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"okinoko_flowvote/proofs"
	"okinoko_flowvote/sdk"
	"okinoko_flowvote/votestore"
	"okinoko_flowvote/voting"
)

// sessionFlags are shared by plan and encode. Explicit flags win over the config file.
type sessionFlags struct {
	configFile string
	chainID    uint64
	contract   string
	token      string
	asset      string
	allocator  string
	holder     string
	proofURL   string
	unitsFile  string
	unitList   string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "Path to a session config JSON file")
	cmd.Flags().Uint64Var(&f.chainID, "chain", 0, "Chain id")
	cmd.Flags().StringVar(&f.contract, "contract", "", "Voting contract address")
	cmd.Flags().StringVar(&f.token, "token", "", "Voting token address")
	cmd.Flags().StringVar(&f.asset, "asset", "", "Voting asset standard (erc721, erc20)")
	cmd.Flags().StringVar(&f.allocator, "allocator", "", "Allocator address for self-managed flows")
	cmd.Flags().StringVar(&f.holder, "holder", "", "Address voting")
	cmd.Flags().StringVar(&f.proofURL, "proof-url", "", "Proof service base url")
	cmd.Flags().StringVar(&f.unitsFile, "units", "", "Path to a JSON array of {owner, tokenId}")
	cmd.Flags().StringVar(&f.unitList, "unit-list", "", "Units as owner:tokenId,owner:tokenId")
}

func (f *sessionFlags) config() (voting.SessionConfig, error) {
	cfg := voting.SessionConfig{}
	if f.configFile != "" {
		loaded, err := voting.LoadSessionConfig(f.configFile)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		cfg = *loaded
	}
	if f.chainID != 0 {
		cfg.ChainID = f.chainID
	}
	if f.contract != "" {
		cfg.Contract = sdk.Address(f.contract)
	}
	if f.token != "" {
		cfg.VotingToken = sdk.Address(f.token)
	}
	if f.asset != "" {
		cfg.VotingAsset = sdk.AssetFromString(f.asset)
	}
	if f.allocator != "" {
		cfg.Allocator = sdk.Address(f.allocator)
	}
	if f.holder != "" {
		cfg.Holder = sdk.Address(f.holder)
	}
	if f.proofURL != "" {
		cfg.ProofServiceURL = f.proofURL
	}
	cfg.Normalize()
	return cfg, nil
}

func (f *sessionFlags) units() ([]voting.VotingPowerUnit, error) {
	var units []voting.VotingPowerUnit
	if f.unitsFile != "" {
		loaded, err := voting.LoadUnits(f.unitsFile)
		if err != nil {
			return nil, fmt.Errorf("units: %w", err)
		}
		units = append(units, loaded...)
	}
	if f.unitList != "" {
		parsed, err := voting.ParseUnits(f.unitList)
		if err != nil {
			return nil, fmt.Errorf("units: %w", err)
		}
		units = append(units, parsed...)
	}
	return units, nil
}

// newRootCmd wires the subcommands. Errors are printed by main, so cobra stays silent.
// --verbose switches the sdk logger for the session event lines too.
func newRootCmd(args []string, ver string) *cobra.Command {
	ver = strings.TrimSpace(ver)
	rootCmd := &cobra.Command{
		Use:   "flowvote",
		Short: "Split a funding stream across recipients and vote in batches",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if ok, _ := cmd.Flags().GetBool("verbose"); ok {
				sdk.SetVerbose(true)
				sdk.Verbose("Using verbose logging...")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.AddCommand(
		newVersionCmd(ver),
		newPlanCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
	)
	rootCmd.SetArgs(args[1:])
	return rootCmd
}

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of the flowvote utility",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "flowvote version", ver)
		},
	}
}

// -----------------------------------------------------------------------------
// plan
// -----------------------------------------------------------------------------

func newPlanCmd() *cobra.Command {
	var flags sessionFlags
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how units split into batches for the resolved backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			backend, err := voting.ResolveBackend(cfg)
			if err != nil {
				return err
			}
			units, err := flags.units()
			if err != nil {
				return err
			}
			units, err = voting.SessionUnits(backend, cfg.Holder, units)
			if err != nil {
				return err
			}
			return printPlan(cmd.OutOrStdout(), backend, voting.PlanFor(backend, units))
		},
	}
	flags.register(cmd)
	return cmd
}

func printPlan(out io.Writer, backend voting.Backend, plan *voting.BatchPlan) error {
	fmt.Fprintf(out, "backend %s: %d unit(s) in %d batch(es) of up to %d\n",
		backend.Kind(), plan.TotalUnits(), plan.TotalBatches, plan.BatchSize)
	for i := 0; i < plan.TotalBatches; i++ {
		units, err := plan.UnitsForBatch(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "batch %d/%d: %d unit(s), %d owner(s)\n",
			i+1, plan.TotalBatches, len(units), len(voting.GroupByOwner(units)))
	}
	return nil
}

// -----------------------------------------------------------------------------
// encode
// -----------------------------------------------------------------------------

type encodeFlags struct {
	sessionFlags
	votes     string
	votesFile string
	mongoURI  string
	mongoDB   string
	record    bool
}

func newEncodeCmd() *cobra.Command {
	var flags encodeFlags
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Dry run a vote: fetch proofs, build and print the calldata of every batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.Context(), cmd.OutOrStdout(), &flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.votes, "votes", "", "Allocations as recipient:bps, e.g. 0xabc..:2500,0xdef..:50%")
	cmd.Flags().StringVar(&flags.votesFile, "votes-file", "", "JSON file holding recorded votes")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo-uri", "", "Read recorded votes from mongo instead of a file")
	cmd.Flags().StringVar(&flags.mongoDB, "mongo-db", "flowvote", "Mongo database name")
	cmd.Flags().BoolVar(&flags.record, "record", false, "Store the submitted allocation as recorded votes")
	return cmd
}

// openStore picks mongo, a votes file or memory, always behind the lru cache.
func openStore(ctx context.Context, flags *encodeFlags) (*votestore.Cached, func(), error) {
	var inner votestore.Store
	cleanup := func() {}
	switch {
	case flags.mongoURI != "":
		store, disconnect, err := votestore.ConnectMongo(ctx, flags.mongoURI, flags.mongoDB, votestore.DefaultCollection)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo: %w", err)
		}
		inner = store
		cleanup = func() {
			if err := disconnect(context.Background()); err != nil {
				sdk.Error("mongo disconnect: %v", err)
			}
		}
	case flags.votesFile != "":
		store, err := votestore.NewFileStore(flags.votesFile)
		if err != nil {
			return nil, nil, err
		}
		inner = store
	default:
		inner = votestore.NewMemoryStore()
	}
	cached, err := votestore.NewCached(inner, votestore.DefaultCacheSize)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return cached, cleanup, nil
}

func runEncode(ctx context.Context, out io.Writer, flags *encodeFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := flags.config()
	if err != nil {
		return err
	}
	units, err := flags.units()
	if err != nil {
		return err
	}
	allocations, err := voting.ParseAllocations(flags.votes)
	if err != nil {
		return err
	}
	store, cleanup, err := openStore(ctx, flags)
	if err != nil {
		return err
	}
	defer cleanup()

	deps := voting.SessionDeps{
		Executor: &dryRunExecutor{out: out},
		Votes:    store,
	}
	if backend, err := voting.ResolveBackend(cfg); err == nil && backend.NeedsProofs() && cfg.ProofServiceURL != "" {
		client, err := proofs.NewClient(proofs.ConfigFromSession(cfg))
		if err != nil {
			return err
		}
		deps.Proofs = client
	}
	session, err := voting.NewSession(cfg, units, deps)
	if err != nil {
		return err
	}
	if err := session.Activate(ctx); err != nil {
		return err
	}
	for _, a := range allocations {
		if err := session.Update(a.Recipient, int(a.Bps)); err != nil {
			return err
		}
	}
	p := session.Progress()
	fmt.Fprintf(out, "session %s: %s, %d recipient(s), %d bps, %d batch(es)\n",
		session.ID(), session.Backend().Kind(), p.Recipients, p.TotalBps, p.TotalBatches)

	var submitted []voting.Allocation
	for {
		submitted = session.Allocations()
		res, err := session.SubmitCurrentBatch(ctx)
		if err != nil {
			return err
		}
		if res.Completed {
			break
		}
	}
	if !flags.record {
		return nil
	}
	return store.Record(ctx, votestore.VoteRecord{
		Contract:    cfg.Contract,
		Holder:      cfg.Holder,
		Allocations: submitted,
	})
}

// dryRunExecutor prints each call and confirms it right away. Nothing is signed or sent.
type dryRunExecutor struct {
	out   io.Writer
	count uint64
}

func (d *dryRunExecutor) Execute(_ context.Context, call sdk.TxCall) (<-chan sdk.TxOutcome, error) {
	d.count++
	fmt.Fprintf(d.out, "call %d|to:%s|chain:%d|method:%s|sel:%s\n",
		d.count, call.Contract.Hex(), call.ChainID, call.Method, hexutil.Encode(call.Selector[:]))
	fmt.Fprintln(d.out, hexutil.Encode(call.Data))
	ch := make(chan sdk.TxOutcome, 1)
	ch <- sdk.TxOutcome{Status: sdk.TxConfirmed, Receipt: &sdk.Receipt{BlockNumber: d.count}}
	close(ch)
	return ch, nil
}

// -----------------------------------------------------------------------------
// decode
// -----------------------------------------------------------------------------

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <calldata>",
		Short: "Decode flow voting calldata back into method and arguments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hexutil.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("calldata: %w", err)
			}
			method, values, err := voting.DecodeCall(data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, method)
			for i, v := range values {
				fmt.Fprintf(out, "  %d: %v\n", i, v)
			}
			return nil
		},
	}
}
