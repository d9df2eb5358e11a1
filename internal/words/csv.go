package words

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
)

// LoadCSV reads a word corpus from a CSV file. The first column of each
// record is the word; any further columns are ignored. Blank records are
// skipped with a warning rather than failing the whole load.
func LoadCSV(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open word corpus %s: %w", filePath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse word corpus %s: %w", filePath, err)
	}

	corpus := make([]string, 0, len(records))
	for _, record := range records {
		if len(record) == 0 || record[0] == "" {
			log.Printf("[LoadCSV] skipping empty record in %s", filePath)
			continue
		}
		corpus = append(corpus, record[0])
	}
	return corpus, nil
}
