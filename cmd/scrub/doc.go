// Command scrub is the batch CLI for locating unwanted content in media
// files and applying mute or blur edits over the flagged time ranges.
package main
