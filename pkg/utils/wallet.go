package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidWalletAddress 校验 EVM 钱包地址格式: 0x 前缀 + 40 位十六进制
func IsValidWalletAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	if !strings.HasPrefix(addr, "0x") {
		return false
	}
	return common.IsHexAddress(addr)
}

// ChecksumAddress 将 EVM 地址转换为 EIP-55 Checksum 格式
func ChecksumAddress(addr string) string {
	if addr == "" {
		return ""
	}
	if !common.IsHexAddress(addr) {
		return addr
	}
	return common.HexToAddress(addr).Hex()
}

// IsUnixSeconds 检查时间戳是否为秒级
func IsUnixSeconds(ts int64) bool {
	// 时间戳范围：1970-01-01 到 2100-01-01
	const maxUnix = 4_102_444_800
	return ts >= 0 && ts < maxUnix
}
