// Package main is the jobcurator CLI: it finds Greenhouse job postings,
// extracts title, company, location and compensation from each page,
// filters them locally and prints or exports the result.
//
// Usage:
//
//	jobcurator "data engineer" --location remote --export jobs.csv
//	jobcurator "data engineer" --board stripe --board figma
//	jobcurator "data engineer" --from-cache
package main

func main() {
	Execute()
}
