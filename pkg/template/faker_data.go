package template

// Sample data pools for the synthetic value generator. Values are picked
// uniformly per call; the pools are read-only after init.

var fakerFirstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Carlos", "Maria", "Wei", "Aisha",
	"Lars", "Ingrid", "Hiroshi", "Fatima", "Diego", "Chioma", "Pavel", "Anya",
}

var fakerLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Nakamura", "Kowalski",
	"Müller", "Okafor", "Petrov", "Lindqvist", "Rossi", "Dubois",
}

var fakerEmailDomains = []string{
	"example.com", "example.org", "mail.test", "mockhub.dev", "demo.io",
}

var fakerDomainWords = []string{
	"acme", "globex", "initech", "umbrella", "hooli", "vandelay", "stark",
	"wayne", "wonka", "tyrell",
}

var fakerTLDs = []string{"com", "org", "net", "io", "dev", "co"}

var fakerStreetSuffixes = []string{
	"St", "Ave", "Blvd", "Ln", "Rd", "Dr", "Way", "Ct", "Pl", "Terrace",
}

var fakerStreetNames = []string{
	"Main", "Oak", "Maple", "Cedar", "Elm", "Washington", "Lake", "Hill",
	"Park", "Pine", "River", "Sunset", "Highland", "Willow", "Chestnut",
}

var fakerCities = []string{
	"Springfield", "Riverton", "Fairview", "Kingsport", "Lakewood",
	"Ashford", "Brookhaven", "Milton", "Clayton", "Dayton", "Georgetown",
	"Salem", "Arlington", "Bristol", "Clinton", "Oxford",
}

var fakerStates = []string{
	"AL", "AK", "AZ", "CA", "CO", "FL", "GA", "IL", "MA", "MI", "NY", "NC",
	"OH", "OR", "PA", "TX", "VA", "WA",
}

var fakerCountries = []string{
	"United States", "Canada", "Mexico", "Brazil", "United Kingdom",
	"France", "Germany", "Spain", "Italy", "Netherlands", "Sweden", "Poland",
	"Japan", "South Korea", "Australia", "New Zealand", "India", "Nigeria",
}

var fakerCompanyNames = []string{
	"Acme Corp", "Globex", "Initech", "Umbrella Group", "Vandelay Industries",
	"Stark Industries", "Wayne Enterprises", "Wonka Labs", "Tyrell Corp",
	"Aperture Systems", "Massive Dynamic", "Soylent Co",
}

var fakerCompanySuffixes = []string{
	"LLC", "Inc", "Group", "Holdings", "Labs", "Partners", "Systems",
}

var fakerBuzzwords = []string{
	"synergize", "streamline", "optimize", "orchestrate", "leverage",
	"scale", "iterate", "transform", "integrate", "accelerate",
}

var fakerBuzzNouns = []string{
	"platforms", "solutions", "pipelines", "ecosystems", "workflows",
	"deliverables", "architectures", "channels", "paradigms", "metrics",
}

var fakerCurrencies = []string{
	"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "SEK", "NOK",
	"INR", "BRL", "MXN", "KRW", "SGD", "ZAR",
}

var fakerColors = []string{
	"red", "orange", "yellow", "green", "blue", "indigo", "violet", "teal",
	"crimson", "amber", "emerald", "azure", "coral", "ivory", "magenta",
	"turquoise", "lavender", "maroon", "olive", "salmon",
}

var fakerProductAdjectives = []string{
	"Rustic", "Sleek", "Ergonomic", "Handcrafted", "Durable", "Compact",
	"Refined", "Modern", "Vintage", "Lightweight", "Premium", "Practical",
}

var fakerProductMaterials = []string{
	"Steel", "Wooden", "Cotton", "Leather", "Granite", "Bamboo", "Ceramic",
	"Copper", "Glass", "Rubber", "Marble", "Titanium",
}

var fakerProductNouns = []string{
	"Chair", "Lamp", "Keyboard", "Backpack", "Watch", "Headphones",
	"Notebook", "Bottle", "Mug", "Speaker", "Wallet", "Desk",
}

var fakerWords = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta", "kappa",
	"lambda", "sigma", "omega", "quartz", "cedar", "ember", "harbor",
	"meadow", "nimbus", "prairie", "summit", "willow",
}

var fakerSentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"All systems are operating within normal parameters.",
	"A journey of a thousand miles begins with a single step.",
	"The report was filed before the end of the quarter.",
	"Fresh data arrives every morning at six.",
}

var fakerUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
}
