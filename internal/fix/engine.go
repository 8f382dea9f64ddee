package fix

// todo: интеграция с git:
// По умолчанию создавать .bak только для незатрекинных дампов.
// Флаг --since HEAD~1 (фильтр по изменённым файлам).

import (
	"errors"
	"fmt"
	"sort"

	"typo3update/internal/diag"
	"typo3update/internal/source"
	"typo3update/internal/token"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	ApplyModeID
)

// ParseMode maps a CLI spelling onto an ApplyMode.
func ParseMode(s string) (ApplyMode, error) {
	switch s {
	case "once", "":
		return ApplyModeOnce, nil
	case "all":
		return ApplyModeAll, nil
	case "id":
		return ApplyModeID, nil
	}
	return ApplyModeOnce, fmt.Errorf("unknown fix mode %q (want once, all or id)", s)
}

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	File      source.FileID
	Path      string
	EditCount int
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  *diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// and applies them to copies of the affected token streams. Updated streams
// are stored back into fs with source.FileModified set; writing them to disk
// is left to the caller.
func Apply(fs *source.FileSet, diagnostics []*diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	ctx := diag.FixBuildContext{FileSet: fs}
	candidates, buildSkips := gatherCandidates(ctx, fs, diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skippedDuringApply, changes := applyCandidates(fs, selected)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	result.FileChanges = append(result.FileChanges, changes...)

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates materialises fixes of every fixable diagnostic.
//
// Fixes that fail to build, carry no edits or repeat an already seen ID are
// recorded as skipped. A fix without an ID gets one synthesised from the
// diagnostic code, file path, token index and fix index. Candidates receive a
// monotonically increasing order for stable sorting.
func gatherCandidates(ctx diag.FixBuildContext, fs *source.FileSet, diagnostics []*diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seen := make(map[string]struct{})

	order := 0
	for _, d := range diagnostics {
		if !d.Fixable() {
			continue
		}

		resolved, err := diag.MaterializeFixes(ctx, d.Fixes)
		if err != nil {
			skips = append(skips, SkippedFix{
				Title:  d.Message,
				Reason: fmt.Sprintf("failed to build fixes: %v", err),
			})
			continue
		}

		for idx, f := range resolved {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Reason: "fix has no edits",
				})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%s-%d-%d", d.Code.ID(), formatFilePath(fs, d.Primary.File), d.Primary.Token, idx)
			}
			if _, dup := seen[f.ID]; dup {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Reason: "duplicate fix id",
				})
				continue
			}
			seen[f.ID] = struct{}{}
			cands = append(cands, candidate{
				diag:  d,
				fix:   f,
				order: order,
			})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders candidates by file, token, insertion order, code,
// preference (preferred first), ID and finally title.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary != dj.Primary {
			return di.Primary.Less(dj.Primary)
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred && !candidates[j].fix.IsPreferred
		}
		if candidates[i].fix.ID != candidates[j].fix.ID {
			return candidates[i].fix.ID < candidates[j].fix.ID
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				if cand.fix.RequiresAll { // такой fix применяется только вместе со всеми
					return nil, []SkippedFix{{
						ID:     opts.TargetID,
						Reason: "fix requires all fixes to be applied",
					}}
				}
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability.String()),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		var selected []candidate
		var fallback *candidate
		skipped := make([]SkippedFix, 0)
		for i := range candidates {
			cand := candidates[i]
			if cand.fix.RequiresAll {
				skipped = append(skipped, SkippedFix{
					ID:     cand.fix.ID,
					Title:  cand.fix.Title,
					Reason: "fix requires all fixes to be applied",
				})
				continue
			}
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = []candidate{cand}
				break
			}
			if fallback == nil {
				tmp := cand
				fallback = &tmp
			}
		}
		if len(selected) == 0 && fallback != nil {
			selected = []candidate{*fallback}
		}
		return selected, skipped
	default:
		return nil, nil
	}
}

// applyCandidates replaces token contents fix by fix. A fix is all or
// nothing: when one of its edits is rejected, none of them is kept.
func applyCandidates(fs *source.FileSet, selected []candidate) ([]AppliedFix, []SkippedFix, []FileChange) {
	streams := make(map[source.FileID]token.Stream)
	touched := make(map[source.FileID]map[uint32]struct{})
	fileEditCount := make(map[source.FileID]int)

	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	for _, cand := range selected {
		buckets := groupEditsByFile(cand.fix.Edits)
		staged := make(map[source.FileID]token.Stream, len(buckets))
		totalEdits := 0
		var skipReason string

		for _, fileID := range sortedFileIDs(buckets) {
			file := fs.Get(fileID)
			if file == nil {
				skipReason = fmt.Sprintf("unknown file %d", fileID)
				break
			}
			working, ok := streams[fileID]
			if !ok {
				working = file.Tokens.Clone()
			} else {
				working = working.Clone()
			}

			for _, edit := range buckets[fileID] {
				if reason := checkEdit(working, touched[fileID], edit); reason != "" {
					skipReason = reason
					break
				}
				working[edit.Pos.Token].Content = edit.NewText
			}
			if skipReason != "" {
				break
			}
			staged[fileID] = working
			totalEdits += len(buckets[fileID])
		}

		if skipReason != "" {
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: skipReason,
			})
			continue
		}

		for fileID, s := range staged {
			streams[fileID] = s
			if touched[fileID] == nil {
				touched[fileID] = make(map[uint32]struct{})
			}
			for _, edit := range buckets[fileID] {
				touched[fileID][edit.Pos.Token] = struct{}{}
			}
			fileEditCount[fileID] += len(buckets[fileID])
		}

		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   formatFilePath(fs, cand.diag.Primary.File),
			EditCount:     totalEdits,
		})
	}

	fileChanges := make([]FileChange, 0, len(streams))
	for fileID, s := range streams {
		fs.Replace(fileID, s)
		fileChanges = append(fileChanges, FileChange{
			File:      fileID,
			Path:      formatFilePath(fs, fileID),
			EditCount: fileEditCount[fileID],
		})
	}
	sort.SliceStable(fileChanges, func(i, j int) bool {
		return fileChanges[i].Path < fileChanges[j].Path
	})

	return applied, skipped, fileChanges
}

// checkEdit returns a non-empty reason when edit cannot be applied to s.
func checkEdit(s token.Stream, touched map[uint32]struct{}, edit diag.TokenEdit) string {
	if !s.Valid(int(edit.Pos.Token)) {
		return "edit position out of range"
	}
	if _, ok := touched[edit.Pos.Token]; ok {
		return "conflicts with previously applied edits"
	}
	if edit.OldText != "" && s[edit.Pos.Token].Content != edit.OldText {
		return "existing text does not match expected content"
	}
	return ""
}

// groupEditsByFile buckets edits per file in token order.
func groupEditsByFile(edits []diag.TokenEdit) map[source.FileID][]diag.TokenEdit {
	buckets := make(map[source.FileID][]diag.TokenEdit)
	for _, edit := range edits {
		buckets[edit.Pos.File] = append(buckets[edit.Pos.File], edit)
	}
	for id, list := range buckets {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Pos.Token < list[j].Pos.Token
		})
		buckets[id] = list
	}
	return buckets
}

func sortedFileIDs(buckets map[source.FileID][]diag.TokenEdit) []source.FileID {
	ids := make([]source.FileID, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if fs == nil {
		return ""
	}
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
