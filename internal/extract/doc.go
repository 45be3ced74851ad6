// Package extract recovers story log ids and level selections from free-form
// session log lines.
//
// Three rules are compiled once into a Rules value:
//
//   - the summary rule matches "Logs Read: <M> / <N> | IDs: [..]" lines and
//     yields every numeric id in the list;
//   - the display name rule matches terminal codes such as "ABC-DEF-123" and
//     resolves them through the catalog;
//   - the level change rule matches expedition selections and decodes the
//     area token with catalog.LevelCode.
//
// HistoryScan applies the first two rules to a whole file for the startup
// reconciliation. LatestScan applies the last two and keeps only the final
// match of each, which is what the live watcher reports.
package extract
