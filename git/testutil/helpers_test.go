package testutil

import "github.com/GenerousLabs/expo-fs/fs/core"

var shimReadOpts = core.ReadOptions{Encoding: core.EncodingUTF8}
