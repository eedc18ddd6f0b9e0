// Package views renders the site's HTML with templ components.
//
// Element ids are the contract with the stylesheet and the small inline
// script in Layout: contactForm, formSuccess, submitBtn, contact-alert, and
// one "<field>Error" message element per input.
//
// The *_templ.go files are generated from the .templ sources.
package views

//go:generate templ generate
