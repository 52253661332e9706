package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// SaveConfig 验证后保存配置，格式由扩展名决定；目标文件已存在时先备份
func (cm *configManager) SaveConfig(config *Config, filePath string) error {
	if err := cm.ValidateConfig(config); err != nil {
		return fmt.Errorf("配置验证失败: %w", err)
	}

	expanded, err := homedir.Expand(filePath)
	if err != nil {
		return fmt.Errorf("展开配置文件路径失败: %w", err)
	}

	format, err := formatOf(expanded)
	if err != nil {
		return err
	}

	// 创建备份
	if _, err := os.Stat(expanded); err == nil {
		if err := createBackup(expanded, time.Now()); err != nil {
			return fmt.Errorf("创建配置备份失败: %w", err)
		}
	}

	data, err := marshal(format, config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	dir := filepath.Dir(expanded)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	if err := os.WriteFile(expanded, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// backupPath 生成 name_backup_20060102_150405.ext 形式的备份路径
func backupPath(filePath string, now time.Time) string {
	ext := filepath.Ext(filePath)
	base := strings.TrimSuffix(filePath, ext)
	return fmt.Sprintf("%s_backup_%s%s", base, now.Format("20060102_150405"), ext)
}

// createBackup 创建配置文件备份
func createBackup(filePath string, now time.Time) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return os.WriteFile(backupPath(filePath, now), data, 0644)
}
