package scanner

// Catalog returns a fresh copy of the built-in scanner specs, keyed by ID.
// Callers may adjust the copy (e.g. executable overrides) before passing it
// to NewRegistry.
func Catalog() map[ID]Spec {
	return map[ID]Spec{
		Dirsearch: {
			Executable:  "dirsearch",
			Args:        []Token{Lit("-u"), URL, Lit("--format=plain"), Lit("-quiet")},
			Description: "Brute-force paths with the default wordlist",
			Homepage:    "https://github.com/maurosoria/dirsearch",
		},
		Httpx: {
			Executable:  "httpx-pd",
			Args:        []Token{Lit("-sc"), Lit("-fr"), Lit("-title"), Lit("-u"), URL, Lit("-nc"), Lit("-silent")},
			Description: "Probe status code, title and redirects",
			Homepage:    "https://github.com/projectdiscovery/httpx",
		},
		Katana: {
			Executable:  "katana",
			Args:        []Token{Lit("-u"), URL},
			Description: "Crawl the target for URLs",
			Homepage:    "https://github.com/projectdiscovery/katana",
		},
		Nuclei: {
			Executable:  "nuclei",
			Args:        []Token{Lit("-nc"), Lit("-u"), URL, Lit("--silent")},
			Description: "Run default vulnerability templates",
			Homepage:    "https://github.com/projectdiscovery/nuclei",
		},
		Waybackurls: {
			Executable:  "waybackurls",
			Args:        []Token{URL},
			Description: "Fetch historical URLs from the Wayback Machine",
			Homepage:    "https://github.com/tomnomnom/waybackurls",
		},
		Subfinder: {
			Executable:  "subfinder",
			Args:        []Token{Lit("-d"), Host, Lit("--silent")},
			Description: "Enumerate subdomains passively",
			Homepage:    "https://github.com/projectdiscovery/subfinder",
		},
		Naabu: {
			Executable:  "naabu",
			Args:        []Token{Lit("-host"), Host, Lit("--silent")},
			Description: "Scan for open ports",
			Homepage:    "https://github.com/projectdiscovery/naabu",
		},
	}
}
