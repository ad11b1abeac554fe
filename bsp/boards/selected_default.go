//go:build !board_np_proto

package boards

const selectedName = NPDevkit
