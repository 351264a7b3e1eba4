package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/synnergy-labs/asset-runtime/core/addr"
	"github.com/synnergy-labs/asset-runtime/core/manifest"
	"github.com/synnergy-labs/asset-runtime/core/resource"
	"github.com/synnergy-labs/asset-runtime/core/sbor"
)

// manifestInstruction is the on-disk shape of one instruction in the
// declarative instruction list `manifest analyze` reads — a short stand-in
// for a full text-manifest compiler, matching how thin this CLI surface is
// meant to stay.
type manifestInstruction struct {
	Kind     string   `yaml:"kind"`
	Resource string   `yaml:"resource"`
	Address  string   `yaml:"address"`
	Method   string   `yaml:"method"`
	Amount   string   `yaml:"amount"`
	Ids      []uint64 `yaml:"ids"`
	Into     uint32   `yaml:"into"`
	Bucket   uint32   `yaml:"bucket"`
	Buckets  []uint32 `yaml:"buckets"`
}

type manifestFile struct {
	Resources []struct {
		Address  string `yaml:"address"`
		Fungible bool   `yaml:"fungible"`
	} `yaml:"resources"`
	Components []struct {
		Address   string `yaml:"address"`
		Blueprint string `yaml:"blueprint"`
	} `yaml:"components"`
	Instructions []manifestInstruction `yaml:"instructions"`
}

func loadResourceId(s string) (resource.ResourceId, error) {
	_, raw, err := addr.Decode(addr.Mainnet, s)
	if err != nil {
		return resource.ResourceId{}, err
	}
	return resource.ResourceId(raw), nil
}

func manifestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "manifest"}
	cmd.AddCommand(manifestAnalyzeCmd())
	return cmd
}

func manifestAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "run the static worktop analyzer over a declarative instruction list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var mf manifestFile
			if err := yaml.Unmarshal(raw, &mf); err != nil {
				return err
			}

			kinds := make(map[resource.ResourceId]bool, len(mf.Resources))
			for _, r := range mf.Resources {
				id, err := loadResourceId(r.Address)
				if err != nil {
					return fmt.Errorf("resource %s: %w", r.Address, err)
				}
				kinds[id] = r.Fungible
			}
			components := make(map[resource.ResourceId]string, len(mf.Components))
			for _, c := range mf.Components {
				id, err := loadResourceId(c.Address)
				if err != nil {
					return fmt.Errorf("component %s: %w", c.Address, err)
				}
				components[id] = c.Blueprint
			}

			instructions, err := buildInstructions(mf.Instructions)
			if err != nil {
				return err
			}

			a := manifest.NewAnalyzer(manifest.StaticResourceKinds(kinds), manifest.StaticComponentBlueprints(components))
			if err := a.Analyze(instructions); err != nil {
				logger.WithError(err).Error("manifest analysis failed")
				return err
			}
			return printAnalysis(a)
		},
	}
}

func buildInstructions(list []manifestInstruction) ([]manifest.Instruction, error) {
	out := make([]manifest.Instruction, 0, len(list))
	for i, ins := range list {
		built, err := buildInstruction(ins)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		out = append(out, built)
	}
	return out, nil
}

func buildInstruction(ins manifestInstruction) (manifest.Instruction, error) {
	switch ins.Kind {
	case "take_all_from_worktop":
		r, err := loadResourceId(ins.Resource)
		if err != nil {
			return nil, err
		}
		return manifest.TakeAllFromWorktop{Resource: r, Into: manifest.BucketHandle(ins.Into)}, nil
	case "take_from_worktop":
		r, err := loadResourceId(ins.Resource)
		if err != nil {
			return nil, err
		}
		amt, err := resource.ParseDecimal(ins.Amount)
		if err != nil {
			return nil, fmt.Errorf("amount: %w", err)
		}
		return manifest.TakeFromWorktop{Resource: r, Amount: amt, Into: manifest.BucketHandle(ins.Into)}, nil
	case "take_non_fungibles_from_worktop":
		r, err := loadResourceId(ins.Resource)
		if err != nil {
			return nil, err
		}
		return manifest.TakeNonFungiblesFromWorktop{Resource: r, Ids: localIds(ins.Ids), Into: manifest.BucketHandle(ins.Into)}, nil
	case "return_to_worktop":
		return manifest.ReturnToWorktop{Bucket: manifest.BucketHandle(ins.Bucket)}, nil
	case "assert_worktop_contains":
		r, err := loadResourceId(ins.Resource)
		if err != nil {
			return nil, err
		}
		assertion := manifest.AssertWorktopContains{Resource: r}
		if ins.Amount != "" {
			amt, err := resource.ParseDecimal(ins.Amount)
			if err != nil {
				return nil, fmt.Errorf("amount: %w", err)
			}
			assertion.Amount = &amt
		}
		return assertion, nil
	case "assert_worktop_contains_non_fungibles":
		r, err := loadResourceId(ins.Resource)
		if err != nil {
			return nil, err
		}
		return manifest.AssertWorktopContainsNonFungibles{Resource: r, Ids: localIds(ins.Ids)}, nil
	case "assert_worktop_is_empty":
		return manifest.AssertWorktopIsEmpty{}, nil
	case "call_method":
		r, err := loadResourceId(ins.Address)
		if err != nil {
			return nil, fmt.Errorf("address: %w", err)
		}
		callArgs, err := nativeMethodArgs(ins)
		if err != nil {
			return nil, fmt.Errorf("args: %w", err)
		}
		return manifest.CallMethod{Address: manifest.ResolvedAddress(r), Method: ins.Method, Args: callArgs}, nil
	default:
		return nil, fmt.Errorf("unknown instruction kind %q", ins.Kind)
	}
}

func localIds(ns []uint64) []resource.NonFungibleLocalId {
	ids := make([]resource.NonFungibleLocalId, len(ns))
	for i, n := range ns {
		ids[i] = resource.NewIntegerLocalId(n)
	}
	return ids
}

// nativeMethodArgs builds the argument tuple for the handful of typed
// native methods the declarative format exposes, in exactly the shapes
// interpretTypedInvocation expects.
func nativeMethodArgs(ins manifestInstruction) (sbor.TupleValue, error) {
	switch ins.Method {
	case "withdraw":
		r, err := loadResourceId(ins.Resource)
		if err != nil {
			return sbor.TupleValue{}, err
		}
		amt, err := resource.ParseDecimal(ins.Amount)
		if err != nil {
			return sbor.TupleValue{}, fmt.Errorf("amount: %w", err)
		}
		return sbor.TupleValue{Elements: []sbor.Value{manifest.ResourceArg(r), manifest.DecimalArg(amt)}}, nil
	case "withdraw_non_fungibles":
		r, err := loadResourceId(ins.Resource)
		if err != nil {
			return sbor.TupleValue{}, err
		}
		return sbor.TupleValue{Elements: []sbor.Value{manifest.ResourceArg(r), manifest.NonFungibleIdsArg(localIds(ins.Ids))}}, nil
	case "deposit":
		return sbor.TupleValue{Elements: []sbor.Value{manifest.BucketArg(manifest.BucketHandle(ins.Bucket))}}, nil
	case "deposit_batch":
		elems := make([]sbor.Value, len(ins.Buckets))
		for i, b := range ins.Buckets {
			elems[i] = manifest.BucketArg(manifest.BucketHandle(b))
		}
		return sbor.TupleValue{Elements: []sbor.Value{sbor.ArrayValue{ElementKind: manifest.KindBucketRef, Elements: elems}}}, nil
	default:
		return sbor.TupleValue{}, nil
	}
}

func printAnalysis(a *manifest.Analyzer) error {
	type report struct {
		Fungible    map[string]manifest.AmountBound              `json:"fungible"`
		NonFungible map[string]manifest.NonFungibleBounds        `json:"non_fungible"`
		Uncertainty []manifest.UncertaintySource                 `json:"uncertainty"`
		Invocations map[int]manifest.InvocationStaticInformation `json:"invocations"`
		Empty       bool                                         `json:"worktop_empty"`
	}
	r := report{
		Fungible:    make(map[string]manifest.AmountBound),
		NonFungible: make(map[string]manifest.NonFungibleBounds),
		Uncertainty: a.Uncertainty(),
		Invocations: a.InvocationInformation(),
		Empty:       a.WorktopIsEmpty(),
	}
	for res, b := range a.WorktopFungible() {
		r.Fungible[fmt.Sprintf("%x", res)] = b
	}
	for res, b := range a.WorktopNonFungible() {
		r.NonFungible[fmt.Sprintf("%x", res)] = b
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
