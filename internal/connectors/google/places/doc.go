// Package places resolves place ids to coordinates through the Places API (New).
package places
