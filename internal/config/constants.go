package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultScrapeBaseURL is the results listing the scraper reads.
	DefaultScrapeBaseURL = "https://www.pilio.idv.tw/lto539/list539BIG.asp"

	// DefaultUserAgent is sent with scraper requests; the results site
	// rejects clients without a browser user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DataFileName is the name of the dataset document.
	DataFileName = "lottery_data.json"
)

// dataFileCandidates returns the locations searched for the dataset, in order.
func dataFileCandidates(cwd, home string) []string {
	var paths []string
	if cwd != "" {
		paths = append(paths,
			filepath.Join(cwd, DataFileName),
			filepath.Join(cwd, "public", DataFileName),
			filepath.Join(cwd, "frontend", "public", DataFileName),
		)
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "lotto-dashboard", DataFileName))
	}
	return paths
}

// FindDataFile returns the first existing dataset among the usual locations.
// When none exists it returns the path under the user config directory, which
// is where the scraper writes a fresh dataset.
func FindDataFile() string {
	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()

	candidates := dataFileCandidates(cwd, home)
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}

	if len(candidates) == 0 {
		return DataFileName
	}
	return candidates[len(candidates)-1]
}
