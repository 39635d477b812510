// Package domain defines core data models, contracts and the error taxonomy
// shared across the app. It contains plain types and interfaces only.
package domain
