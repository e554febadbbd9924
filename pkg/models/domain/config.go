package domain

import "fmt"

// DatasetProfile names an order-line dataset and where it lives.
type DatasetProfile struct {
	Name     string
	CSVPath  string
	DBPath   string
	Currency string
}

func (p DatasetProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.DBPath)
}
