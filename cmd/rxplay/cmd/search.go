package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/xinjiayu/rxlite"
	"github.com/xinjiayu/rxlite/internal/gifsearch"
)

const (
	keyThrottle  = "throttle"
	keyLatency   = "latency"
	keyCacheTTL  = "cache-ttl"
	keyKeystroke = "keystroke"
	keyTimeout   = "timeout"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Type a query into the GIF search screen and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  search,
}

func init() {
	addSearchFlags(searchCmd.Flags())
}

func addSearchFlags(flags *pflag.FlagSet) {
	flags.Duration(keyThrottle, gifsearch.DefaultThrottle, "minimum spacing between searches")
	flags.Duration(keyLatency, 200*time.Millisecond, "simulated catalogue latency")
	flags.Duration(keyCacheTTL, time.Minute, "how long results stay cached")
	flags.Duration(keyKeystroke, 350*time.Millisecond, "delay between typed characters")
	flags.Duration(keyTimeout, 10*time.Second, "give up after this long")
	bindFlags(flags)
}

func search(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	keystroke := viper.GetDuration(keyKeystroke)

	ctx, cancel := context.WithTimeout(cmd.Context(), viper.GetDuration(keyTimeout))
	defer cancel()

	loop := rxlite.NewEventLoopScheduler(rxlite.WithLogger(log))
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- loop.Run(ctx)
	}()

	catalog := gifsearch.NewCatalogSearcher(gifsearch.DefaultCatalog(), loop,
		gifsearch.WithLatency(viper.GetDuration(keyLatency)))
	searcher := gifsearch.NewCachedSearcher(catalog, viper.GetDuration(keyCacheTTL))
	controller := gifsearch.NewController(searcher, loop,
		gifsearch.WithThrottle(viper.GetDuration(keyThrottle)),
		gifsearch.WithLogger(log))
	log.Info().Str("session", controller.SessionID()).Str("query", query).Msg("typing")

	bag := rxlite.NewDisposeBag(rxlite.WithLogger(log))
	defer bag.Dispose()

	out := cmd.OutOrStdout()
	bag.Add(controller.Results().Skip(1).SubscribeWithCallbacks(func(value interface{}) {
		fmt.Fprintf(out, "%d result(s)\n", len(value.([]gifsearch.Gif)))
	}, nil, nil))

	bag.Add(rxlite.Interval(keystroke, loop).
		Take(len(query)).
		SubscribeWithCallbacks(func(value interface{}) {
			controller.UpdateQuery(query[:value.(int)+1])
		}, nil, nil))

	settle := time.Duration(len(query)+1)*keystroke + viper.GetDuration(keyLatency)
	if err := rxlite.BlockingWait(ctx, rxlite.Timer(settle, loop)); err != nil {
		return err
	}
	if err := controller.Close(); err != nil {
		log.Warn().Err(err).Msg("closing controller")
	}

	for _, gif := range controller.Current() {
		fmt.Fprintf(out, "%-8s %-24s %s\n", gif.ID, gif.Title, gif.URL)
	}

	cancel()
	if err := <-loopDone; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
