// Package report reads the query configuration and writes the final
// ranked report.
//
// Both shapes are boundary compatibility contracts: the configuration is
// the persona/job/documents JSON consumed at startup, and the report is
// the metadata + extracted_sections + subsection_analysis JSON produced at
// the end of a fully successful run. The report is written atomically (a
// temp file in the target directory renamed into place), so no partial or
// corrupt output file is ever visible.
package report
