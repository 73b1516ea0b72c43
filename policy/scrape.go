package policy

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hupe1980/admitflow/logging"
	"github.com/tidwall/gjson"
)

// Lookup is the knowledge-base retrieval capability the Scraper consumes.
// It returns raw reference material for a topic: legacy prose, JSON, or
// anything else. The Scraper treats every result as untrusted.
type Lookup interface {
	Lookup(ctx context.Context, topic string) (string, error)
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(ctx context.Context, topic string) (string, error)

// Lookup implements Lookup.
func (f LookupFunc) Lookup(ctx context.Context, topic string) (string, error) { return f(ctx, topic) }

// Topics the Scraper queries, matching the knowledge-base document keys of
// the legacy admission system.
const (
	topicEligibility = "eligibility criteria"
	topicCapacity    = "university capacity"
	topicLoan        = "loan policy"
)

// Legacy prose patterns. The knowledge base historically stored policies as
// free text; these extract the numbers the stages need.
var (
	reMinGPA       = regexp.MustCompile(`minimum GPA of ([\d.]+)`)
	reCapacityLine = regexp.MustCompile(`([\w\s]+):\s*(\d+)`)
	reMaxLoan      = regexp.MustCompile(`maximum loan amount of \$([\d,]+)`)
	reInterest     = regexp.MustCompile(`interest rate of ([\d.]+)%`)
	reMinIncome    = regexp.MustCompile(`minimum income of \$([\d,]+)`)
	reMinCredit    = regexp.MustCompile(`credit score of (\d+)`)
	reTuitionFee   = regexp.MustCompile(`tuition fee: \$([\d,]+)`)
	reRegistration = regexp.MustCompile(`registration fee: \$([\d,]+)`)
	reFacilityFee  = regexp.MustCompile(`facility fee: \$([\d,]+)`)
)

// Scraper is a Source backed by a knowledge-base Lookup. Values are
// extracted per field from whatever the lookup returns; any field that
// cannot be parsed keeps the fallback source's value. Lookup failures are
// logged at debug level and never surface to the workflow.
type Scraper struct {
	lookup   Lookup
	fallback Source
	logger   logging.Logger
}

// ScraperOptions configures a Scraper.
type ScraperOptions struct {
	// Fallback supplies values for topics or fields the lookup cannot.
	// Defaults to NewStatic().
	Fallback Source
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// NewScraper constructs a Scraper over a knowledge-base lookup capability.
func NewScraper(lookup Lookup, optFns ...func(o *ScraperOptions)) *Scraper {
	opts := ScraperOptions{
		Fallback: NewStatic(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Scraper{lookup: lookup, fallback: opts.Fallback, logger: opts.Logger}
}

func (s *Scraper) raw(ctx context.Context, topic string) (string, bool) {
	text, err := s.lookup.Lookup(ctx, topic)
	if err != nil {
		s.logger.Debug("policy lookup failed, using fallback", "topic", topic, "error", err)
		return "", false
	}
	return text, text != ""
}

// Eligibility implements Source.
func (s *Scraper) Eligibility(ctx context.Context) EligibilityCriteria {
	criteria := s.fallback.Eligibility(ctx)
	raw, ok := s.raw(ctx, topicEligibility)
	if !ok {
		return criteria
	}
	if gjson.Valid(raw) {
		if v := gjson.Get(raw, "min_gpa"); v.Exists() {
			criteria.MinGPA = v.Float()
		}
		if v := gjson.Get(raw, "required_documents"); v.IsArray() {
			docs := make([]string, 0, len(v.Array()))
			for _, d := range v.Array() {
				docs = append(docs, d.String())
			}
			if len(docs) > 0 {
				criteria.RequiredDocuments = docs
			}
		}
		return criteria
	}
	if m := reMinGPA.FindStringSubmatch(raw); m != nil {
		if gpa, err := strconv.ParseFloat(m[1], 64); err == nil {
			criteria.MinGPA = gpa
		}
	}
	return criteria
}

// Program implements Source. Capacity and enrollment come from the
// university-capacity topic, fees from the per-program fee topic; each
// field independently falls back.
func (s *Scraper) Program(ctx context.Context, name string) (Program, bool) {
	program, known := s.fallback.Program(ctx, name)
	if !known {
		program = Program{Name: name}
	}

	if raw, ok := s.raw(ctx, topicCapacity); ok {
		if gjson.Valid(raw) {
			if v := gjson.Get(raw, gjson.Escape(name)); v.Exists() {
				known = true
				if c := v.Get("capacity"); c.Exists() {
					program.Capacity = int(c.Int())
				}
				if e := v.Get("enrolled"); e.Exists() {
					program.Enrolled = int(e.Int())
				}
			}
		} else {
			for _, m := range reCapacityLine.FindAllStringSubmatch(raw, -1) {
				if strings.TrimSpace(m[1]) != name {
					continue
				}
				if c, err := strconv.Atoi(m[2]); err == nil {
					program.Capacity = c
					known = true
				}
			}
		}
	}

	if raw, ok := s.raw(ctx, fmt.Sprintf("%s fees", name)); ok {
		if gjson.Valid(raw) {
			if v := gjson.Get(raw, "tuition_fee"); v.Exists() {
				program.TuitionFee = int(v.Int())
			}
			if v := gjson.Get(raw, "registration_fee"); v.Exists() {
				program.RegistrationFee = int(v.Int())
			}
			if v := gjson.Get(raw, "facility_fee"); v.Exists() {
				program.FacilityFee = int(v.Int())
			}
		} else {
			if n, ok := scrapeAmount(reTuitionFee, raw); ok {
				program.TuitionFee = n
			}
			if n, ok := scrapeAmount(reRegistration, raw); ok {
				program.RegistrationFee = n
			}
			if n, ok := scrapeAmount(reFacilityFee, raw); ok {
				program.FacilityFee = n
			}
		}
	}

	return program, known
}

// Loan implements Source.
func (s *Scraper) Loan(ctx context.Context) LoanPolicy {
	loan := s.fallback.Loan(ctx)
	raw, ok := s.raw(ctx, topicLoan)
	if !ok {
		return loan
	}
	if gjson.Valid(raw) {
		if v := gjson.Get(raw, "max_loan_amount"); v.Exists() {
			loan.MaxAmount = int(v.Int())
		}
		if v := gjson.Get(raw, "interest_rate"); v.Exists() {
			loan.InterestRate = v.Float()
		}
		if v := gjson.Get(raw, "repayment_period_years"); v.Exists() {
			loan.RepaymentYears = int(v.Int())
		}
		if v := gjson.Get(raw, "minimum_income_requirement"); v.Exists() {
			loan.MinIncome = int(v.Int())
		}
		if v := gjson.Get(raw, "credit_score_requirement"); v.Exists() {
			loan.MinCreditScore = int(v.Int())
		}
		return loan
	}
	if n, ok := scrapeAmount(reMaxLoan, raw); ok {
		loan.MaxAmount = n
	}
	if m := reInterest.FindStringSubmatch(raw); m != nil {
		if rate, err := strconv.ParseFloat(m[1], 64); err == nil {
			loan.InterestRate = rate
		}
	}
	if n, ok := scrapeAmount(reMinIncome, raw); ok {
		loan.MinIncome = n
	}
	if m := reMinCredit.FindStringSubmatch(raw); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			loan.MinCreditScore = score
		}
	}
	return loan
}

// Template implements Source. Template topics are looked up verbatim; the
// fallback source answers when the knowledge base has no entry.
func (s *Scraper) Template(ctx context.Context, name string) (string, bool) {
	if raw, ok := s.raw(ctx, name); ok {
		return raw, true
	}
	return s.fallback.Template(ctx, name)
}

// scrapeAmount extracts a comma-grouped dollar amount via the given pattern.
func scrapeAmount(re *regexp.Regexp, raw string) (int, bool) {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
