package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/moviemate/moviemate"
	"github.com/s0up4200/moviemate/render"
)

var (
	lookupQuery string

	watched   bool
	unwatched bool
	rating    float64
	notes     string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search movies by title",
	Long:  `Search the catalog by title. Without a query the popular movies are shown.`,
	RunE:  runSearch,
}

// popularCmd represents the popular command
var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Show popular movies",
	Args:  cobra.NoArgs,
	RunE:  runView(render.TargetSearch),
}

// collectionCmd represents the collection command
var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Show your movie collection",
	Args:  cobra.NoArgs,
	RunE:  runView(render.TargetCollection),
}

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"recommendations"},
	Short:   "Show movies recommended for you",
	Args:    cobra.NoArgs,
	RunE:    runView(render.TargetRecommendations),
}

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <tmdb-id>",
	Short: "Add a movie to your collection",
	Long: `Add a movie to your collection by its TMDb id. The movie is looked up in
the search results for --query (popular movies when unset) and in your
recommendations.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <tmdb-id>",
	Short: "Remove a movie from your collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

// rateCmd represents the rate command
var rateCmd = &cobra.Command{
	Use:   "rate <tmdb-id>",
	Short: "Update watched state, rating or notes of a collected movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runRate,
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, popularCmd, collectionCmd, recommendCmd} {
		addFilterFlags(c)
	}

	addCmd.Flags().StringVarP(&lookupQuery, "query", "q", "", "search query used to find the movie")

	rateCmd.Flags().BoolVar(&watched, "watched", false, "mark the movie as watched")
	rateCmd.Flags().BoolVar(&unwatched, "unwatched", false, "mark the movie as not watched")
	rateCmd.Flags().Float64Var(&rating, "rating", 0, "your rating of the movie")
	rateCmd.Flags().StringVar(&notes, "notes", "", "notes about the movie")
	rateCmd.MarkFlagsMutuallyExclusive("watched", "unwatched")

	rootCmd.AddCommand(searchCmd, popularCmd, collectionCmd, recommendCmd, addCmd, removeCmd, rateCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := controller.Bootstrap(ctx); err != nil {
		return err
	}
	if err := applyRefinement(); err != nil {
		return err
	}
	return controller.Search(ctx, strings.Join(args, " "))
}

func runView(target render.Target) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := controller.Bootstrap(ctx); err != nil {
			return err
		}
		if err := applyRefinement(); err != nil {
			return err
		}
		if target == render.TargetSearch {
			return controller.LoadPopular(ctx)
		}
		return controller.Navigate(ctx, target)
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := controller.Bootstrap(ctx); err != nil {
		return err
	}

	if err := lookupMovies(ctx, lookupQuery); err != nil {
		return err
	}

	id := moviemate.ExternalID(args[0])
	logger.Info().Str("tmdb_id", id.String()).Msg("Adding movie to collection")
	return controller.Add(ctx, id)
}

// lookupMovies fills the lists Add resolves movies from
func lookupMovies(ctx context.Context, query string) error {
	if err := controller.Search(ctx, query); err != nil {
		return err
	}
	return controller.LoadRecommendations(ctx)
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := controller.Bootstrap(ctx); err != nil {
		return err
	}

	id := moviemate.ExternalID(args[0])
	logger.Info().Str("tmdb_id", id.String()).Msg("Removing movie from collection")
	return controller.Remove(ctx, id)
}

func runRate(cmd *cobra.Command, args []string) error {
	update, err := entryUpdateFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := controller.Bootstrap(ctx); err != nil {
		return err
	}

	return controller.Update(ctx, moviemate.ExternalID(args[0]), update)
}

// entryUpdateFromFlags builds a partial update from the flags that were set
func entryUpdateFromFlags(cmd *cobra.Command) (moviemate.EntryUpdate, error) {
	var update moviemate.EntryUpdate
	flags := cmd.Flags()

	if flags.Changed("watched") {
		w := watched
		update.Watched = &w
	}
	if flags.Changed("unwatched") {
		w := !unwatched
		update.Watched = &w
	}
	if flags.Changed("rating") {
		if rating < 0 || rating > 10 {
			return update, fmt.Errorf("invalid rating: %g (must be between 0 and 10)", rating)
		}
		r := rating
		update.Rating = &r
	}
	if flags.Changed("notes") {
		n := notes
		update.Notes = &n
	}

	if update.IsEmpty() {
		return update, fmt.Errorf("nothing to update: set --watched, --unwatched, --rating or --notes")
	}
	return update, nil
}
