package compare

import "strings"

// entityMappingRule links business-contract phrasing for one concept category
// to the vocabulary a programmatic contract typically uses for the same
// concept. Matching is case-insensitive substring containment on both sides.
type entityMappingRule struct {
	Category            string
	BusinessPatterns    []string
	TechnicalVocabulary []string
}

// entityMappingRules drives the cross-domain component of entity scoring.
// Temporal business patterns deliberately exclude month names and digits, so
// a bare date phrase like "January 1, 2024" falls into no category and cannot
// pick up the generic-variable bonus against unrelated code elements.
var entityMappingRules = []entityMappingRule{
	{
		Category: "party",
		BusinessPatterns: []string{
			"party", "corporation", "company", "landlord", "tenant",
			"lessor", "lessee", "contractor", "vendor", "client",
			"buyer", "seller", "employer", "employee",
		},
		TechnicalVocabulary: []string{
			"owner", "client", "sender", "payee", "payer", "party",
			"address", "account", "recipient", "beneficiary",
		},
	},
	{
		Category: "financial",
		BusinessPatterns: []string{
			"payment", "rent", "fee", "deposit", "amount", "price",
			"penalty", "salary", "compensation", "dollar", "$",
		},
		TechnicalVocabulary: []string{
			"amount", "balance", "price", "fee", "deposit", "pay",
			"value", "wei", "payment", "funds",
		},
	},
	{
		Category: "contract",
		BusinessPatterns: []string{
			"agreement", "contract", "lease", "terms", "clause",
			"provision", "covenant",
		},
		TechnicalVocabulary: []string{
			"contract", "agreement", "terms",
		},
	},
	{
		Category: "action",
		BusinessPatterns: []string{
			"shall", "must", "obligation", "perform", "deliver",
			"terminate", "execute", "provide", "notify",
		},
		TechnicalVocabulary: []string{
			"execute", "transfer", "call", "withdraw", "deliver",
			"notify", "terminate", "function",
		},
	},
	{
		Category: "temporal",
		BusinessPatterns: []string{
			"deadline", "duration", "expiry", "expiration", "term",
			"period", "schedule", "due date", "monthly", "annually",
		},
		TechnicalVocabulary: []string{
			"time", "timestamp", "deadline", "duration", "expiry",
			"block.timestamp", "period",
		},
	},
	{
		Category: "service",
		BusinessPatterns: []string{
			"service", "maintenance", "support", "repair", "utilities",
		},
		TechnicalVocabulary: []string{
			"service", "maintain", "repair",
		},
	},
	{
		Category: "status",
		BusinessPatterns: []string{
			"active", "terminated", "valid", "breach", "default",
			"complete", "effective",
		},
		TechnicalVocabulary: []string{
			"status", "state", "active", "enabled", "flag", "valid",
		},
	},
}

// relationMappingRule is the edge-label analogue of entityMappingRule.
type relationMappingRule struct {
	Category            string
	BusinessPatterns    []string
	TechnicalVocabulary []string
}

var relationMappingRules = []relationMappingRule{
	{
		Category: "obligation",
		BusinessPatterns: []string{
			"has_obligation", "must", "shall", "obligated_to",
			"responsible_for", "agrees_to",
		},
		TechnicalVocabulary: []string{
			"calls", "executes", "requires", "implements",
		},
	},
	{
		Category: "financial",
		BusinessPatterns: []string{
			"pays", "owes", "pay_to", "compensates", "reimburses",
		},
		TechnicalVocabulary: []string{
			"transfers", "sends", "pays", "deposits",
		},
	},
	{
		Category: "temporal",
		BusinessPatterns: []string{
			"due_on", "expires_on", "starts_on", "valid_until",
			"effective_from",
		},
		TechnicalVocabulary: []string{
			"scheduled", "before", "after", "expires",
		},
	},
	{
		Category: "conditional",
		BusinessPatterns: []string{
			"if", "unless", "provided_that", "conditional_on",
			"subject_to",
		},
		TechnicalVocabulary: []string{
			"requires", "checks", "validates", "guards",
		},
	},
}

// genericTechnicalTypes are code element types too unspecific to carry
// meaning on their own. A business-side pattern hit against one of these
// earns the reduced mapping score.
var genericTechnicalTypes = map[string]bool{
	"VARIABLE":       true,
	"FUNCTION":       true,
	"STATE_VARIABLE": true,
	"PARAMETER":      true,
}

// genericTechnicalRelations are structural edge labels emitted for nearly
// every code element, so a business-side hit against one of them earns only
// the reduced mapping score.
var genericTechnicalRelations = map[string]bool{
	"contains":      true,
	"has_member":    true,
	"has_parameter": true,
}

// variableTargetTypes gates the two special-cased mapping combinations: they
// apply only to variable-like targets, never to functions or parameters.
// STATE_VARIABLE is included because the Solidity extractor emits it where a
// plain VARIABLE tag would otherwise appear.
var variableTargetTypes = map[string]bool{
	"VARIABLE":       true,
	"STATE_VARIABLE": true,
}

// financialIndicators and partyIndicators back the two special-cased mapping
// combinations for typed sources against variable targets.
var financialIndicators = []string{"amount", "price", "payment", "fee"}

var partyIndicators = []string{"client", "provider", "owner", "party"}

// typeCompatibility pairs entity types that commonly describe the same
// concept across the two domains. Lookup is symmetric and type equality
// always counts as a hit.
var typeCompatibility = map[string][]string{
	"ORGANIZATION": {"VARIABLE", "CONTRACT", "ADDRESS"},
	"PERSON":       {"VARIABLE", "ADDRESS", "ACCOUNT"},
	"MONEY":        {"VARIABLE", "STATE_VARIABLE", "UINT256", "AMOUNT"},
	"DATE":         {"VARIABLE", "UINT256", "TIMESTAMP"},
	"TIME":         {"VARIABLE", "UINT256", "TIMESTAMP"},
	"OBLIGATION":   {"FUNCTION", "MODIFIER"},
	"ACTION":       {"FUNCTION", "EVENT"},
	"CONDITION":    {"MODIFIER", "REQUIREMENT"},
	"PROPERTY":     {"VARIABLE", "STATE_VARIABLE", "STRUCT"},
	"CONTRACT":     {"CONTRACT", "STRUCT"},
}

// domainGroups clusters types that inhabit the same conceptual domain; a
// shared group is weaker evidence than an explicit compatibility pair.
var domainGroups = [][]string{
	{"PERSON", "ORGANIZATION", "PARTY", "ADDRESS", "ACCOUNT"},
	{"MONEY", "AMOUNT", "UINT256", "PAYMENT"},
	{"DATE", "TIME", "TIMESTAMP", "DURATION"},
	{"OBLIGATION", "ACTION", "FUNCTION", "EVENT", "MODIFIER"},
	{"VARIABLE", "STATE_VARIABLE", "PARAMETER", "PROPERTY", "STRUCT"},
}

// relationCompatibility pairs edge labels with overlapping meaning; lookup
// is symmetric.
var relationCompatibility = map[string][]string{
	"pays":           {"transfers", "sends", "deposits"},
	"owes":           {"transfers", "pays"},
	"has_obligation": {"calls", "executes", "requires"},
	"owns":           {"has", "controls"},
	"contains":       {"has", "stores"},
	"governs":        {"controls", "modifies"},
	"due_on":         {"scheduled", "expires"},
}

// entitySemanticGroups maps semantic categories to trigger keywords found in
// entity text or string property values. Month names live here rather than
// in the mapping rules: they signal a temporal context without implying any
// cross-domain concept match.
var entitySemanticGroups = map[string][]string{
	"financial": {
		"payment", "pay", "rent", "amount", "fee", "deposit", "price",
		"balance", "money", "dollar", "usd", "wei", "salary", "fund",
	},
	"temporal": {
		"date", "time", "deadline", "duration", "expiry", "month",
		"year", "day", "week", "annual", "monthly",
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
	},
	"party": {
		"party", "corporation", "company", "client", "owner",
		"landlord", "tenant", "person", "contractor", "vendor",
		"lessee", "lessor", "buyer", "seller",
	},
	"contract": {
		"contract", "agreement", "lease", "terms", "clause",
		"provision",
	},
	"action": {
		"transfer", "execute", "deliver", "perform", "terminate",
		"withdraw", "call", "provide", "notify",
	},
	"storage": {
		"variable", "state", "storage", "mapping", "struct", "array",
		"store", "record",
	},
	"status": {
		"status", "active", "valid", "breach", "default", "complete",
		"terminated", "enabled",
	},
}

// relationSemanticGroups is the edge-label analogue of entitySemanticGroups.
var relationSemanticGroups = map[string][]string{
	"control": {
		"calls", "executes", "requires", "modifies", "controls",
		"triggers", "governs",
	},
	"data": {
		"has", "contains", "stores", "references", "reads", "owns",
		"holds",
	},
	"temporal": {
		"before", "after", "during", "expires", "scheduled", "due",
	},
	"financial": {
		"pays", "transfers", "sends", "owes", "deposits",
		"compensates",
	},
	"structural": {
		"part_of", "belongs_to", "defined_in", "member_of",
		"inherits",
	},
}

// typesCompatible reports whether a and b are an explicit compatibility pair
// or the same type. Lookup is case-insensitive and symmetric.
func typesCompatible(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	if a == b {
		return true
	}
	for _, c := range typeCompatibility[a] {
		if c == b {
			return true
		}
	}
	for _, c := range typeCompatibility[b] {
		if c == a {
			return true
		}
	}
	return false
}

// sameDomainGroup reports whether a and b appear together in any domain
// group.
func sameDomainGroup(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	for _, group := range domainGroups {
		hasA, hasB := false, false
		for _, t := range group {
			if t == a {
				hasA = true
			}
			if t == b {
				hasB = true
			}
		}
		if hasA && hasB {
			return true
		}
	}
	return false
}

// relationsCompatible reports whether two edge labels are an explicit
// compatibility pair; equality is scored separately by the caller.
func relationsCompatible(a, b string) bool {
	for _, c := range relationCompatibility[a] {
		if c == b {
			return true
		}
	}
	for _, c := range relationCompatibility[b] {
		if c == a {
			return true
		}
	}
	return false
}
