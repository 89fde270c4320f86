package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mockhub/mockhub/internal/id"
	"github.com/mockhub/mockhub/internal/rng"
)

// Generator produces synthetic values from short expression strings:
// category.method forms like "person.firstName" or "internet.email",
// parameterized forms like "number(1,100)", and bare keywords like "now"
// or "uuid". Every call is independent; the random source is safe for
// concurrent use.
type Generator struct {
	rnd *rng.Source
}

// NewGenerator creates a Generator drawing from the given random source.
func NewGenerator(rnd *rng.Source) *Generator {
	if rnd == nil {
		rnd = rng.New()
	}
	return &Generator{rnd: rnd}
}

// numberExpr matches number(min,max) with optional whitespace.
var numberExpr = regexp.MustCompile(`^number\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)$`)

// randomIntExpr matches the parameterized dynamic variable randomInt(min,max).
var randomIntExpr = regexp.MustCompile(`^randomInt\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)$`)

// Keyword resolves the bare keyword expressions. Unknown names report false.
func (g *Generator) Keyword(name string) (string, bool) {
	switch name {
	case "now":
		return time.Now().UTC().Format(time.RFC3339), true
	case "nowUnix":
		return strconv.FormatInt(time.Now().Unix(), 10), true
	case "nowMs":
		return strconv.FormatInt(time.Now().UnixMilli(), 10), true
	case "uuid", "guid":
		return id.New(), true
	case "today":
		return time.Now().UTC().Format("2006-01-02"), true
	}
	return "", false
}

// Faker resolves a category.method expression. Unknown expressions report
// false so the caller can leave the literal text in place.
func (g *Generator) Faker(expr string) (string, bool) {
	if m := numberExpr.FindStringSubmatch(expr); m != nil {
		min, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		return strconv.Itoa(g.rnd.Between(min, max)), true
	}

	switch expr {
	// Person / name
	case "person.firstName", "name.first":
		return g.pick(fakerFirstNames), true
	case "person.lastName", "name.last":
		return g.pick(fakerLastNames), true
	case "person.name", "person.fullName", "name.full":
		return g.pick(fakerFirstNames) + " " + g.pick(fakerLastNames), true
	case "person.jobTitle":
		return g.pick([]string{"Senior", "Junior", "Lead", "Principal", "Staff"}) +
			" " + g.pick([]string{"Software", "Data", "Product", "Security", "Platform"}) +
			" " + g.pick([]string{"Engineer", "Analyst", "Manager", "Architect", "Designer"}), true

	// Internet
	case "internet.email":
		return strings.ToLower(g.pick(fakerFirstNames)) + "." +
			strings.ToLower(g.pick(fakerLastNames)) +
			strconv.Itoa(g.rnd.IntN(100)) + "@" + g.pick(fakerEmailDomains), true
	case "internet.userName":
		return strings.ToLower(g.pick(fakerFirstNames)) + strconv.Itoa(g.rnd.IntN(1000)), true
	case "internet.domainName":
		return g.pick(fakerDomainWords) + "." + g.pick(fakerTLDs), true
	case "internet.url":
		return "https://" + g.pick(fakerDomainWords) + "." + g.pick(fakerTLDs) + "/" + g.pick(fakerWords), true
	case "internet.ip", "internet.ipv4":
		return fmt.Sprintf("%d.%d.%d.%d", g.rnd.IntN(224)+1, g.rnd.IntN(256), g.rnd.IntN(256), g.rnd.IntN(255)+1), true
	case "internet.ipv6":
		groups := make([]string, 8)
		for i := range groups {
			groups[i] = fmt.Sprintf("%04x", g.rnd.IntN(65536))
		}
		return strings.Join(groups, ":"), true
	case "internet.mac":
		return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
			g.rnd.IntN(256), g.rnd.IntN(256), g.rnd.IntN(256),
			g.rnd.IntN(256), g.rnd.IntN(256), g.rnd.IntN(256)), true
	case "internet.userAgent":
		return g.pick(fakerUserAgents), true

	// Address
	case "address.street":
		return fmt.Sprintf("%d %s %s", g.rnd.IntN(9899)+100,
			g.pick(fakerStreetNames), g.pick(fakerStreetSuffixes)), true
	case "address.city":
		return g.pick(fakerCities), true
	case "address.state":
		return g.pick(fakerStates), true
	case "address.zipCode":
		return fmt.Sprintf("%05d", g.rnd.IntN(100000)), true
	case "address.country":
		return g.pick(fakerCountries), true

	// Company
	case "company.name":
		return g.pick(fakerCompanyNames), true
	case "company.suffix":
		return g.pick(fakerCompanySuffixes), true
	case "company.catchPhrase":
		return g.pick(fakerBuzzwords) + " " + g.pick(fakerBuzzNouns), true

	// Phone
	case "phone.number":
		return fmt.Sprintf("+1-%03d-%03d-%04d",
			g.rnd.IntN(800)+200, g.rnd.IntN(900)+100, g.rnd.IntN(10000)), true

	// Commerce
	case "commerce.productName":
		return g.pick(fakerProductAdjectives) + " " +
			g.pick(fakerProductMaterials) + " " + g.pick(fakerProductNouns), true
	case "commerce.price":
		return fmt.Sprintf("%d.%02d", g.rnd.IntN(999)+1, g.rnd.IntN(100)), true
	case "commerce.color":
		return g.pick(fakerColors), true

	// Finance
	case "finance.amount":
		return fmt.Sprintf("%d.%02d", g.rnd.IntN(100000), g.rnd.IntN(100)), true
	case "finance.currencyCode":
		return g.pick(fakerCurrencies), true
	case "finance.account":
		return fmt.Sprintf("%08d", g.rnd.IntN(100000000)), true

	// Lorem
	case "lorem.word":
		return g.pick(fakerWords), true
	case "lorem.sentence":
		return g.pick(fakerSentences), true

	// Scalars
	case "boolean":
		if g.rnd.IntN(2) == 0 {
			return "false", true
		}
		return "true", true
	case "uuid":
		return id.New(), true
	}

	return "", false
}

// Dynamic resolves $-prefixed dynamic variable expressions (without the
// leading $). Unknown names report false.
func (g *Generator) Dynamic(expr string) (string, bool) {
	switch expr {
	case "guid", "uuid", "randomUUID":
		return id.New(), true
	case "timestamp":
		return strconv.FormatInt(time.Now().Unix(), 10), true
	case "isoTimestamp":
		return time.Now().UTC().Format(time.RFC3339), true
	case "randomInt":
		return strconv.Itoa(g.rnd.IntN(1000)), true
	case "randomBoolean":
		res, _ := g.Faker("boolean")
		return res, true
	case "randomFirstName":
		return g.pick(fakerFirstNames), true
	case "randomLastName":
		return g.pick(fakerLastNames), true
	case "randomFullName":
		res, _ := g.Faker("person.name")
		return res, true
	case "randomEmail":
		res, _ := g.Faker("internet.email")
		return res, true
	case "randomIP":
		res, _ := g.Faker("internet.ip")
		return res, true
	case "randomUserAgent":
		return g.pick(fakerUserAgents), true
	case "randomCity":
		return g.pick(fakerCities), true
	case "randomCountry":
		return g.pick(fakerCountries), true
	case "randomPhoneNumber":
		res, _ := g.Faker("phone.number")
		return res, true
	case "randomCompanyName":
		return g.pick(fakerCompanyNames), true
	case "randomColor":
		return g.pick(fakerColors), true
	case "randomPrice":
		res, _ := g.Faker("commerce.price")
		return res, true
	case "randomWord":
		return g.pick(fakerWords), true
	}

	// Parameterized form: randomInt(min,max)
	if m := randomIntExpr.FindStringSubmatch(expr); m != nil {
		min, _ := strconv.Atoi(m[1])
		max, _ := strconv.Atoi(m[2])
		return strconv.Itoa(g.rnd.Between(min, max)), true
	}

	return "", false
}

// RandomString returns an alphanumeric string of length n.
func (g *Generator) RandomString(n int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[g.rnd.IntN(len(charset))]
	}
	return string(b)
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rnd.IntN(len(pool))]
}
