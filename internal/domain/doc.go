// Package domain models the wildfire incident dataset behind the explorer.
//
// # Data Source
//
// Incidents come from the USDA Forest Service Fire Program Analysis fire-occurrence
// database (FPA-FOD), either as the SQLite distribution (table "Fires") or as a
// CSV export of the same columns. Only six columns are used:
//
//	FIRE_YEAR         discovery year, integer (e.g. 2005)
//	STATE             two-letter postal code, may be blank
//	LONGITUDE         WGS-84 decimal degrees, may be blank
//	LATITUDE          WGS-84 decimal degrees, may be blank
//	FIRE_SIZE         final burned area in acres, non-negative
//	STAT_CAUSE_DESCR  statistical cause label, e.g. "Lightning", "Debris Burning"
//
// # Conventions
//
// Unparseable FIRE_SIZE values are treated as 0 acres. Blank or unparseable
// coordinates are treated as absent; the zero [Geo] means "no coordinates",
// which is safe because (0, 0) lies in the Gulf of Guinea, far outside the dataset.
//
// Cause labels are compared with case-sensitive equality. The empty string is
// reserved as the "no cause selected" sentinel ([NoCause]), so a record with
// a blank cause is rejected during validation.
//
// # Derived Views
//
// [Dataset] is immutable after construction. Every derived view (incidents of a
// year, cause counts, state counts) is recomputed from it on demand:
//
//	CountByCause  descending by count, ties in first-encounter order
//	CountByState  ascending by state code
//
// Both orders drive layout downstream (bar chart x-axis, heatmap grid) and are
// reproduced exactly. See [CountByCause] and [CountByState].
//
// # Marker Classes
//
// Incident markers are sized ln(acres/2 + 1) and bucketed into four classes:
//
//	small       < 100 acres
//	medium      < 750 acres
//	large       < 50,000 acres
//	very_large  >= 50,000 acres
package domain
