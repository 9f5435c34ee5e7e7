package planner

import (
	"github.com/backmassage/xresconv/internal/options"
)

// Compile expands items against g's output matrix. Jobs come back in
// declaration order: items in load order, rules in matrix order.
//
// Argument order per job:
//  1. scalar flags in first-set order, with -t and -n taken from the rule
//     when it sets them
//  2. <option> tokens from <global>
//  3. the item's own <option> tokens
//  4. scheme selectors: -s file -m scheme when the item has both,
//     otherwise -m key=value for each scheme entry
//  5. passthrough arguments from the command line
//
// A rule with tags is skipped for items sharing none of them; classes
// work the same way.
func Compile(g options.GlobalConfig, items []options.ConvItem) Plan {
	plan := Plan{BatchSize: g.BatchSize()}

	rules := g.OutputMatrix
	ruleIdx := make([]int, len(rules))
	for i := range rules {
		ruleIdx[i] = i
	}
	if len(rules) == 0 {
		rules = []options.OutputRule{{}}
		ruleIdx = []int{NoRule}
	}

	for _, it := range items {
		if !it.Enabled {
			plan.Disabled++
			continue
		}
		selectors := schemeSelectors(it)
		for i, rule := range rules {
			if !matches(rule.Tags, it.Tags) || !matches(rule.Classes, it.Classes) {
				plan.Filtered++
				continue
			}
			plan.Jobs = append(plan.Jobs, Job{
				Item: it.Label(),
				Rule: ruleIdx[i],
				Args: buildArgs(g, rule, it, selectors),
			})
		}
	}
	return plan
}

// matches reports whether an item passes a rule predicate. An empty
// predicate admits every item.
func matches(want, have options.TokenSet) bool {
	return len(want) == 0 || want.Intersects(have)
}

func buildArgs(g options.GlobalConfig, rule options.OutputRule, it options.ConvItem, selectors []string) []string {
	scalars := g.ScalarArgs.Clone()
	if rule.Type != "" {
		scalars.Set(options.FlagOutputType, rule.Type)
	}
	if rule.Rename != "" {
		scalars.Set(options.FlagRename, rule.Rename)
	}

	args := make([]string, 0, 2*scalars.Len()+len(g.ExtraArgsPre)+len(it.LocalOptions)+len(selectors)+len(g.ExtraArgsPost))
	args = append(args, scalars.Flatten()...)
	args = append(args, g.ExtraArgsPre...)
	args = append(args, it.LocalOptions...)
	args = append(args, selectors...)
	args = append(args, g.ExtraArgsPost...)
	return args
}

func schemeSelectors(it options.ConvItem) []string {
	if it.File != "" && it.Scheme != "" {
		return []string{options.FlagSchemeFile, it.File, options.FlagScheme, it.Scheme}
	}
	var out []string
	for _, k := range it.SchemeData.Keys() {
		for _, v := range it.SchemeData.Get(k) {
			out = append(out, options.FlagScheme, k+"="+v)
		}
	}
	return out
}
