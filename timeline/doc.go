// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package timeline serves the guild's short-message feed.

Messages and vote comments are NFC-normalized and trimmed before the
100-character limit is checked, so the limit counts characters as people
see them. The feed shows the 50 latest posts with a relative age, a date
key for grouping, and reactions grouped by emoji.
*/
package timeline
