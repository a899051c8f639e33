// Package model defines the core data structures shared across flstudio-hub.
//
// # Plugins
//
// PluginRecord is a static, read-only description of a bundled or
// third-party plugin. Records are loaded once from embedded JSON and never
// mutated:
//
//	rec := model.PluginRecord{ID: "sytrus", Name: "Sytrus", Family: model.FamilyFMHybrid}
//	rec.HasFlag("All Plugins Edition")
//
// # Project Templates
//
// ProjectTemplate is a user-saved bundle of channel, mixer, pattern and
// playlist metadata. It is not audio:
//
//	tpl := model.NewTemplateDraft("Test", "edm", 120, "C Major")
//	ch := tpl.AddChannel("Kick", "FPC")
//	tpl.AddPattern("Intro", ch.ID)
//
// Child ids use the channel-, track- and pattern- prefixes. References
// between children (a Pattern's Channel) are not validated.
package model
