package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/synnergy-labs/asset-runtime/core/pool"
	"github.com/synnergy-labs/asset-runtime/core/resource"
)

// poolEntry parses a repeated "address:value" flag shared by contribute and
// redeem (reserve divisibility, or contribution amount, keyed by address).
func poolEntry(s string) (resource.ResourceId, string, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return resource.ResourceId{}, "", fmt.Errorf("expected address:value, got %q", s)
	}
	id, err := loadResourceId(parts[0])
	if err != nil {
		return resource.ResourceId{}, "", err
	}
	return id, parts[1], nil
}

func poolCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pool"}
	cmd.AddCommand(poolContributeCmd())
	cmd.AddCommand(poolRedeemCmd())
	return cmd
}

func poolContributeCmd() *cobra.Command {
	var reserves []string
	var contributions []string
	cmd := &cobra.Command{
		Use:   "contribute",
		Short: "run a pool contribution against a freshly created pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := parseReserveSpecs(reserves)
			if err != nil {
				return err
			}
			p, err := pool.New(specs)
			if err != nil {
				return err
			}
			amounts := make(map[resource.ResourceId]resource.Decimal, len(contributions))
			for _, c := range contributions {
				id, amtStr, err := poolEntry(c)
				if err != nil {
					return err
				}
				amt, err := resource.ParseDecimal(amtStr)
				if err != nil {
					return fmt.Errorf("contribution amount: %w", err)
				}
				amounts[id] = amt
			}
			minted, change, event, err := p.Contribute(amounts)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{
				"minted": minted,
				"change": change,
				"event":  event,
			})
		},
	}
	cmd.Flags().StringSliceVar(&reserves, "reserve", nil, "address:divisibility, repeatable")
	cmd.Flags().StringSliceVar(&contributions, "amount", nil, "address:amount, repeatable")
	return cmd
}

func poolRedeemCmd() *cobra.Command {
	var reserves []string
	var units string
	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "compute the redemption value for a pool-unit amount against a freshly created pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := parseReserveSpecs(reserves)
			if err != nil {
				return err
			}
			p, err := pool.New(specs)
			if err != nil {
				return err
			}
			amt, err := resource.ParseDecimal(units)
			if err != nil {
				return fmt.Errorf("units: %w", err)
			}
			values, err := p.GetRedemptionValue(amt)
			if err != nil {
				return err
			}
			return printJSON(map[string]interface{}{"redemption_value": values})
		},
	}
	cmd.Flags().StringSliceVar(&reserves, "reserve", nil, "address:divisibility, repeatable")
	cmd.Flags().StringVar(&units, "units", "0", "pool-unit amount to redeem")
	return cmd
}

func parseReserveSpecs(reserves []string) ([]pool.ReserveSpec, error) {
	specs := make([]pool.ReserveSpec, 0, len(reserves))
	for _, r := range reserves {
		id, divStr, err := poolEntry(r)
		if err != nil {
			return nil, err
		}
		div, err := strconv.Atoi(divStr)
		if err != nil {
			return nil, fmt.Errorf("divisibility: %w", err)
		}
		specs = append(specs, pool.ReserveSpec{Resource: id, Divisibility: div, Fungible: true})
	}
	return specs, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
