// Package handlers wires HTTP routes to the contact controller and views.
package handlers
