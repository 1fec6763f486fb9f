package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/gobwas/glob"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
	"github.com/GenerousLabs/expo-fs/fs/core"
	"github.com/GenerousLabs/expo-fs/git"
)

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("docgit "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parse parses args and requires between min and max positional arguments.
// A negative max means no upper bound.
func parse(fs *flag.FlagSet, args []string, min, max int) error {
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if fs.NArg() < min || (max >= 0 && fs.NArg() > max) {
		return usagef("unexpected arguments %q", fs.Args())
	}
	return nil
}

func (a *app) repoOptions(extra ...git.RepositoryOption) []git.RepositoryOption {
	opts := []git.RepositoryOption{
		git.WithPlatform(a.store, a.shimOpts...),
		git.WithLogger(a.logger),
	}
	return append(opts, extra...)
}

func (a *app) openRepo(p string) (*git.Repository, error) {
	return git.Open(p, a.repoOptions()...)
}

func runInit(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "init")
	bare := fs.Bool("bare", false, "create a repository without a worktree")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	opts := a.repoOptions()
	if *bare {
		opts = append(opts, git.WithBare())
	}
	repo, err := git.Init(fs.Arg(0), opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "initialized repository at %s\n", repo.Path())
	return nil
}

func runClone(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "clone")
	depth := fs.Int("depth", 0, "shallow clone depth")
	branch := fs.String("branch", "", "branch to check out")
	username := fs.String("username", "", "HTTP basic auth user")
	password := fs.String("password", "", "HTTP basic auth password or token")
	sshKey := fs.String("ssh-key", "", "path to a PEM private key")
	if err := parse(fs, args, 1, 2); err != nil {
		return err
	}

	opts := a.repoOptions(git.WithDepth(*depth))
	if fs.NArg() == 2 {
		opts = append(opts, git.WithPath(fs.Arg(1)))
	}
	if *branch != "" {
		opts = append(opts, git.WithReferenceName(plumbing.NewBranchReferenceName(*branch)), git.WithSingleBranch())
	}

	switch {
	case *sshKey != "":
		auth, err := git.SSHKeyFile("git", *sshKey)
		if err != nil {
			return err
		}
		opts = append(opts, git.WithAuth(auth))
	case *username != "" || *password != "":
		opts = append(opts, git.WithAuth(git.BasicAuth(*username, *password)))
	}

	repo, err := git.Clone(ctx, fs.Arg(0), opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "cloned %s into %s\n", fs.Arg(0), repo.Path())
	return nil
}

func runLog(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "log")
	from := fs.String("from", "", "stop before this commit")
	to := fs.String("to", "HEAD", "start from this commit")
	limit := fs.Int("n", 0, "maximum number of commits")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	repo, err := a.openRepo(fs.Arg(0))
	if err != nil {
		return err
	}

	count := 0
	for c, err := range repo.WalkCommits(*from, *to) {
		if err != nil {
			return err
		}
		subject, _, _ := strings.Cut(c.Message, "\n")
		fmt.Fprintf(a.stdout, "%s %s\n", c.Hash[:7], subject)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}
	return nil
}

func runCommit(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "commit")
	message := fs.String("m", "", "commit message")
	all := fs.Bool("all", false, "stage every change, including deletions")
	allowEmpty := fs.Bool("allow-empty", false, "commit even when nothing changed")
	if err := parse(fs, args, 1, -1); err != nil {
		return err
	}
	if *message == "" {
		return usagef("-m is required")
	}

	repo, err := a.openRepo(fs.Arg(0))
	if err != nil {
		return err
	}

	paths := fs.Args()[1:]
	switch {
	case *all:
		err = repo.AddAll()
	case len(paths) > 0:
		err = repo.Add(paths...)
	}
	if err != nil {
		return err
	}

	hash, err := repo.CreateCommit(git.CommitOptions{
		Author:     a.cfg.Author.Name,
		Email:      a.cfg.Author.Email,
		Message:    *message,
		AllowEmpty: *allowEmpty,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, hash)
	return nil
}

func runBranches(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "branches")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	repo, err := a.openRepo(fs.Arg(0))
	if err != nil {
		return err
	}
	branches, err := repo.ListBranches()
	if err != nil {
		return err
	}
	current, err := repo.CurrentBranch()
	if err != nil && !fserrors.HasCode(err, fserrors.CodeInvalid) {
		return err
	}

	for _, b := range branches {
		marker := " "
		if !b.IsRemote && b.Name == current {
			marker = "*"
		}
		fmt.Fprintf(a.stdout, "%s %s %s\n", marker, b.Name, b.Hash.String()[:7])
	}
	return nil
}

func runLs(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "ls")
	match := fs.String("match", "", "only list names matching this glob")
	if err := parse(fs, args, 0, 1); err != nil {
		return err
	}

	dir := "/"
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	var filter glob.Glob
	if *match != "" {
		g, err := glob.Compile(*match)
		if err != nil {
			return fserrors.Wrap(err, fserrors.CodeInvalid, "compile --match")
		}
		filter = g
	}

	names, err := a.fsys.Readdir(ctx, dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		if filter != nil && !filter.Match(name) {
			continue
		}
		st, err := a.fsys.Stat(ctx, path.Join(dir, name))
		if err != nil {
			if fserrors.HasCode(err, fserrors.CodeNotExist) {
				continue
			}
			return err
		}
		if st.IsDirectory() {
			name += "/"
		}
		fmt.Fprintln(a.stdout, name)
	}
	return nil
}

func runImport(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "import")
	force := fs.Bool("force", false, "write into an existing destination")
	if err := parse(fs, args, 2, 2); err != nil {
		return err
	}
	src, dst := fs.Arg(0), fs.Arg(1)

	exists, err := core.Exists(ctx, a.fsys, dst)
	if err != nil {
		return err
	}
	if exists && !*force {
		return fserrors.WithContext(fserrors.New(fserrors.CodeExist, dst), "hint", "use --force to merge")
	}

	if err := core.CopyFromFS(ctx, os.DirFS(src), ".", a.fsys, dst); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "imported %s into %s\n", src, dst)
	return nil
}

func runCat(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "cat")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	data, err := a.fsys.ReadFile(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(data)
	return err
}

func runStat(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "stat")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	st, err := a.fsys.Stat(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	return writeJSON(a.stdout, st)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
