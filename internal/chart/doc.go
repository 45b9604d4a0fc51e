// Package chart renders brand frequency tables as bar charts.
//
// Charts are drawn with gonum/plot. Each bar is one brand label on the
// X axis with its occurrence count on the Y axis, the same picture the
// report's frequency counts describe in text form.
package chart
