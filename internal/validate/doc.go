// Package validate inspects a machine template directory and reports
// problems as classified findings. Every check runs regardless of earlier
// failures; findings are collected in check order into a single Report and
// partitioned into errors and warnings afterwards. Validation never modifies
// the directory.
package validate
