package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntree/internal/ioquery"
	"github.com/gnames/gntree/pkg/gntree"
	"github.com/gnames/gntree/pkg/taxa"
	"github.com/spf13/cobra"
)

var (
	queryDeep   bool
	queryDegree int
)

func getQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Answer tree questions against a populated store",
		Long: `Query the lineage tree index. Results are printed as JSON.

Ancestor tests and subtree enumeration run as pattern scans over the
stored lineage strings; no recursive queries are issued.

Examples:
  gntree query name2id "Homo sapiens"
  gntree query lineage 9606
  gntree query children 7711 --deep
  gntree query ancestor 33208 9606
  gntree query relatives 9606 --degree 2
  gntree query nca 9606 7955`,
	}

	cmd.AddCommand(
		queryNameToID(), queryIDToName(), queryRank(), queryParent(),
		queryLineage(), queryAncestor(), queryChildren(),
		querySiblings(), queryRelatives(), queryNCA(),
	)
	return cmd
}

// withTaxonomy connects to the store and hands a Taxonomy to fn.
func withTaxonomy(fn func(ctx context.Context, tax gntree.Taxonomy) error) error {
	ctx := context.Background()
	cfg := getConfig()

	op := newOperator(cfg)
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	tax, err := ioquery.New(ctx, cfg, op)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return fn(ctx, tax)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("not a taxon id: %q", arg)
	}
	return id, nil
}

func printJSON(data any) error {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(data)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// notFound reports lookup misses as a message instead of an error
// dump.
func notFound(err error) (bool, error) {
	if errors.Is(err, taxa.ErrNotFound) {
		gn.Info("No match found.")
		return true, nil
	}
	if err != nil {
		gn.PrintErrorMessage(err)
	}
	return false, err
}

func queryNameToID() *cobra.Command {
	return &cobra.Command{
		Use:   "name2id <name>",
		Short: "Translate a scientific name into a taxon id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				id, err := tax.NameToID(ctx, args[0])
				if done, err := notFound(err); done || err != nil {
					return err
				}
				return printJSON(map[string]any{"name": args[0], "id": id})
			})
		},
	}
}

func queryIDToName() *cobra.Command {
	return &cobra.Command{
		Use:   "id2name <id>",
		Short: "Translate a taxon id into its scientific name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				name, err := tax.IDToName(ctx, id)
				if done, err := notFound(err); done || err != nil {
					return err
				}
				return printJSON(map[string]any{"id": id, "name": name})
			})
		},
	}
}

func queryRank() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <id>",
		Short: "Return the rank label of a taxon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				rank, err := tax.IDToRank(ctx, id)
				if done, err := notFound(err); done || err != nil {
					return err
				}
				return printJSON(map[string]any{"id": id, "rank": rank})
			})
		},
	}
}

func queryParent() *cobra.Command {
	return &cobra.Command{
		Use:   "parent <id>",
		Short: "Return the parent id of a taxon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				parent, err := tax.Parent(ctx, id)
				if done, err := notFound(err); done || err != nil {
					return err
				}
				return printJSON(map[string]any{"id": id, "parent": parent})
			})
		},
	}
}

func queryLineage() *cobra.Command {
	return &cobra.Command{
		Use:   "lineage <id>",
		Short: "Return the root-to-node id path of a taxon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				path, err := tax.Lineage(ctx, id)
				if done, err := notFound(err); done || err != nil {
					return err
				}
				return printJSON(map[string]any{"id": id, "lineage": path})
			})
		},
	}
}

func queryAncestor() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestor <ancestor-id> <id>",
		Short: "Report whether the first taxon is an ancestor of the second",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			anc, err := parseID(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				ok, err := tax.IsAncestor(ctx, anc, id)
				if err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
				return printJSON(map[string]any{
					"ancestor": anc, "id": id, "is_ancestor": ok,
				})
			})
		},
	}
}

func queryChildren() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "children <id>",
		Short: "List children of a taxon, or its whole subtree with --deep",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				ids, err := tax.Children(ctx, id, queryDeep)
				if err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
				return printJSON(map[string]any{
					"id": id, "deep": queryDeep, "children": ids,
				})
			})
		},
	}
	cmd.Flags().BoolVarP(&queryDeep, "deep", "d", false,
		"return all descendants instead of direct children")
	return cmd
}

func querySiblings() *cobra.Command {
	return &cobra.Command{
		Use:   "siblings <id>",
		Short: "List the other children of the taxon's parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				ids, err := tax.Siblings(ctx, id)
				if err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
				return printJSON(map[string]any{"id": id, "siblings": ids})
			})
		},
	}
}

func queryRelatives() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relatives <id>",
		Short: "List the neighborhood of a taxon within --degree steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				ids, err := tax.Relatives(ctx, id, queryDegree)
				if err != nil {
					gn.PrintErrorMessage(err)
					return err
				}
				return printJSON(map[string]any{
					"id": id, "degree": queryDegree, "relatives": ids,
				})
			})
		},
	}
	cmd.Flags().IntVarP(&queryDegree, "degree", "d", 1,
		"how far the neighborhood extends")
	return cmd
}

func queryNCA() *cobra.Command {
	return &cobra.Command{
		Use:   "nca <id-a> <id-b>",
		Short: "Find the nearest common ancestor of two taxa",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withTaxonomy(func(ctx context.Context, tax gntree.Taxonomy) error {
				dist, id, err := tax.NearestCommonAncestor(ctx, a, b)
				if done, err := notFound(err); done || err != nil {
					return err
				}
				return printJSON(map[string]any{
					"a": a, "b": b, "ancestor": id, "distance": dist,
				})
			})
		},
	}
}
